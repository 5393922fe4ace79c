package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo and StatsRepo with ent's SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

var (
	_ EventRepo = (*eventRepo)(nil)
	_ StatsRepo = (*eventRepo)(nil)
)

// StatsRepo returns a StatsRepo backed by this store.
func (s *Store) StatsRepo() StatsRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

func (r *eventRepo) timestamp() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "catalog_title", "answered").
		Values(seqNum, r.timestamp(), data.SessionID, data.Action, data.CatalogTitle, data.Answered).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "answer_key", "option_label").
		Values(seqNum, r.timestamp(), data.SessionID, data.Key, data.Option).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) OptionCounts(ctx context.Context) ([]OptionCount, error) {
	// Only the newest selection per (session, key) counts; earlier ones were
	// overwritten in the session that made them.
	inner := entsql.Table(answerEventsTable).As("latest")
	latest := builder().
		Select(entsql.Max(inner.C("sequence"))).
		From(inner).
		GroupBy(inner.C("session_id"), inner.C("answer_key"))

	t := entsql.Table(answerEventsTable)
	query, args := builder().
		Select(t.C("answer_key"), t.C("option_label"), entsql.As(entsql.Count("*"), "n")).
		From(t).
		Where(entsql.In(t.C("sequence"), latest)).
		GroupBy(t.C("answer_key"), t.C("option_label")).
		OrderBy(t.C("answer_key"), entsql.Desc("n"), t.C("option_label")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query option counts: %w", err)
	}
	defer rows.Close()

	var counts []OptionCount
	for rows.Next() {
		var c OptionCount
		if err := rows.Scan(&c.Key, &c.Option, &c.Count); err != nil {
			return nil, fmt.Errorf("scan option count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option counts: %w", err)
	}
	return counts, nil
}

func (r *eventRepo) SessionCount(ctx context.Context, action string) (int, error) {
	t := entsql.Table(sessionEventsTable)
	query, args := builder().
		Select(entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("action"), action)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s sessions: %w", action, err)
	}
	return n, nil
}

func (r *eventRepo) LastActivity(ctx context.Context) (time.Time, error) {
	var latest time.Time
	for _, table := range []string{sessionEventsTable, answerEventsTable} {
		t := entsql.Table(table)
		query, args := builder().
			Select(t.C("timestamp")).
			From(t).
			OrderBy(entsql.Desc(t.C("sequence"))).
			Limit(1).
			Query()

		var ts time.Time
		err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("query last %s: %w", table, err)
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	for _, table := range []string{answerEventsTable, sessionEventsTable} {
		query, args := builder().Delete(table).Query()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return r.seq.Reset(ctx)
}

package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how much intake logs. The TUI owns stdout, so
// logs only ever go to a file.
type Config struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`    // megabytes
	MaxAge     int    `yaml:"max_age"`     // days
	MaxBackups int    `yaml:"max_backups"` // rotated files kept
	Compress   bool   `yaml:"compress"`
	IncludeSrc bool   `yaml:"include_src"`
}

// DefaultConfig logs warnings and above to dir/intake.log.
func DefaultConfig(dir string) Config {
	return Config{
		Level:      "warn",
		File:       filepath.Join(dir, "intake.log"),
		MaxSize:    5,
		MaxAge:     30,
		MaxBackups: 3,
	}
}

// New builds a JSON slog logger writing to a rotating file. The returned
// closer releases the file; it is a no-op when logging is disabled (empty
// File).
func New(cfg Config) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}

	opts := &slog.HandlerOptions{
		Level:     LevelFromString(cfg.Level),
		AddSource: cfg.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
					source.Function = strings.TrimPrefix(source.Function, "github.com/abhisek/intake/")
				}
			}
			return a
		},
	}

	target := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	return slog.New(slog.NewJSONHandler(target, opts)), target
}

// LevelFromString maps debug|info|warn|error to a slog level, defaulting to
// info.
func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/mod/semver"
)

// Release is the subset of the GitHub release payload the updater reads.
type Release struct {
	Tag string `json:"tag_name"`
	URL string `json:"html_url"`
}

// CheckResult compares the running version with the newest release.
type CheckResult struct {
	Current         string
	Latest          Release
	UpdateAvailable bool
}

// Check fetches the newest release and reports whether it is newer than
// current. Versions compare by semver; a missing "v" prefix is tolerated.
func (c *Checker) Check(ctx context.Context, current string) (*CheckResult, error) {
	if current == DevVersion {
		return nil, ErrDevBuild
	}
	cur := semverOf(current)
	if !semver.IsValid(cur) {
		return nil, fmt.Errorf("running version %q is not a semantic version", current)
	}

	rel, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}
	latest := semverOf(rel.Tag)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.Tag)
	}

	return &CheckResult{
		Current:         current,
		Latest:          *rel,
		UpdateAvailable: semver.Compare(latest, cur) > 0,
	}, nil
}

func (c *Checker) latestRelease(ctx context.Context) (*Release, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.src.APIURL, c.src.Owner, c.src.Repo)
	body, err := c.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("latest release of %s/%s: %w", c.src.Owner, c.src.Repo, err)
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Tag == "" {
		return nil, fmt.Errorf("latest release of %s/%s has no tag", c.src.Owner, c.src.Repo)
	}
	return &rel, nil
}

// downloadURL is where a release asset is served from.
func (c *Checker) downloadURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", c.src.DownloadURL, c.src.Owner, c.src.Repo, tag, file)
}

func (c *Checker) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json, application/octet-stream")
	req.Header.Set("User-Agent", c.src.Binary+"-selfupdate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", u, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func semverOf(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// Package selfupdate replaces the running binary with a release published on
// GitHub. Where releases live and how their archives are named comes from a
// Source, so forks and private mirrors only need configuration.
package selfupdate

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// DevVersion is the version string of a binary built without -ldflags.
const DevVersion = "(devel)"

var (
	ErrDevBuild      = errors.New("development builds cannot be updated")
	ErrAlreadyLatest = errors.New("already on the latest release")
	ErrChecksum      = errors.New("checksum mismatch")
)

// Source describes where releases are published.
type Source struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Binary string `yaml:"binary"`

	// AssetTemplate names the archive for one platform. Placeholders:
	// {binary}, {os}, {arch}, {ext}.
	AssetTemplate string `yaml:"asset_template"`

	APIURL      string `yaml:"api_url"`
	DownloadURL string `yaml:"download_url"`
}

// DefaultSource points at the public intake releases.
func DefaultSource() Source {
	return Source{
		Owner:         "abhisek",
		Repo:          "intake",
		Binary:        "intake",
		AssetTemplate: "{binary}_{os}_{arch}.{ext}",
		APIURL:        "https://api.github.com",
		DownloadURL:   "https://github.com",
	}
}

// Validate reports a Source that cannot produce release URLs.
func (s Source) Validate() error {
	switch {
	case s.Owner == "" || s.Repo == "":
		return fmt.Errorf("update source: owner and repo are required")
	case s.Binary == "":
		return fmt.Errorf("update source: binary is required")
	case !strings.Contains(s.AssetTemplate, "{ext}"):
		return fmt.Errorf("update source: asset_template %q must contain {ext}", s.AssetTemplate)
	}
	return nil
}

// merge fills the empty fields of s from base.
func (s Source) merge(base Source) Source {
	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	return Source{
		Owner:         pick(s.Owner, base.Owner),
		Repo:          pick(s.Repo, base.Repo),
		Binary:        pick(s.Binary, base.Binary),
		AssetTemplate: pick(s.AssetTemplate, base.AssetTemplate),
		APIURL:        strings.TrimRight(pick(s.APIURL, base.APIURL), "/"),
		DownloadURL:   strings.TrimRight(pick(s.DownloadURL, base.DownloadURL), "/"),
	}
}

// Checker looks up and installs releases from one Source.
type Checker struct {
	src      Source
	client   *http.Client
	platform Platform
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithSource overrides the non-empty fields of the default source.
func WithSource(src Source) Option {
	return func(c *Checker) {
		c.src = src.merge(c.src)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithPlatform installs the archive built for p instead of the host's.
func WithPlatform(p Platform) Option {
	return func(c *Checker) {
		c.platform = p
	}
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) {
		c.execPath = fn
	}
}

// NewChecker creates a Checker for DefaultSource, adjusted by opts.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		src:      DefaultSource().merge(Source{}),
		client:   &http.Client{Timeout: 30 * time.Second},
		platform: CurrentPlatform(),
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the resolved release source.
func (c *Checker) Source() Source {
	return c.src
}

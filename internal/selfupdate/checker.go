// Package selfupdate checks GitHub releases for a newer alevel build and
// replaces the running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// BinaryName is the executable name inside release archives.
	BinaryName = "alevel"

	defaultOwner   = "alevelmaths"
	defaultRepo    = "alevel"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
)

// Checker queries GitHub releases and applies updates.
type Checker struct {
	client   *http.Client
	baseURL  string
	owner    string
	repo     string
	platform platform
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository points the checker at another owner/repo.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

func withPlatform(goos, goarch string) Option {
	return func(c *Checker) { c.platform = platform{goos: goos, goarch: goarch} }
}

// NewChecker creates a Checker for the alevel release repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  defaultBaseURL,
		owner:    defaultOwner,
		repo:     defaultRepo,
		platform: platform{goos: runtime.GOOS, goarch: runtime.GOARCH},
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput is the running build's version.
type CheckInput struct {
	Version string
}

// CheckResult describes the latest published release.
type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

// release is the subset of the GitHub release payload the updater reads.
// Assets carry their own download URLs, so no URL scheme is assumed.
type release struct {
	TagName string         `json:"tag_name"`
	HTMLURL string         `json:"html_url"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
}

// asset finds a published file by name.
func (r *release) asset(name string) (releaseAsset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return releaseAsset{}, false
}

// Check fetches the latest release and compares it with input.Version.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	if !semverish(input.Version) {
		return nil, ErrDevBuild
	}

	rel, err := c.release(ctx, "")
	if err != nil {
		return nil, err
	}
	return compareRelease(input.Version, rel)
}

// compareRelease reports whether rel is newer than the running version.
func compareRelease(running string, rel *release) (*CheckResult, error) {
	latest := canonicalVersion(rel.TagName)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}
	return &CheckResult{
		UpdateAvailable: semver.Compare(latest, canonicalVersion(running)) > 0,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}

// semverish reports whether v names a release build; "(devel)" and empty
// versions do not.
func semverish(v string) bool {
	return semver.IsValid(canonicalVersion(v))
}

// release loads one release by tag, or the latest one when tag is empty.
func (c *Checker) release(ctx context.Context, tag string) (*release, error) {
	path := "releases/latest"
	if tag != "" {
		path = "releases/tags/" + tag
	}
	url := fmt.Sprintf("%s/repos/%s/%s/%s", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo, path)

	body, err := c.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}

// get reads a whole response body, treating any non-200 status as an error.
func (c *Checker) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

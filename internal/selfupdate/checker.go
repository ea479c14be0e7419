package selfupdate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/uad-ng/uad-tui/internal/version"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout bounds a release check.
	DefaultTimeout = 10 * time.Second
)

// Checker queries the latest release of a GitHub repository.
type Checker struct {
	// BaseURL is the API root, overridable for tests and GitHub Enterprise.
	BaseURL string

	// Repo is "owner/name".
	Repo string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	logger *zap.Logger
}

// NewChecker creates a checker for repo ("owner/name").
func NewChecker(repo string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		BaseURL:    DefaultBaseURL,
		Repo:       repo,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
}

// Latest fetches the latest published release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.BaseURL, c.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read release response: %w", err)
	}

	return ParseRelease(body)
}

// ParseRelease reads a GitHub release object.
func ParseRelease(body []byte) (*Release, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Message: "response is not valid JSON"}
	}

	doc := gjson.ParseBytes(body)
	tag := doc.Get("tag_name").String()
	if tag == "" {
		return nil, &ParseError{Message: "tag_name missing"}
	}

	release := &Release{
		TagName: tag,
		Name:    doc.Get("name").String(),
		HTMLURL: doc.Get("html_url").String(),
	}
	doc.Get("assets").ForEach(func(_, asset gjson.Result) bool {
		release.Assets = append(release.Assets, Asset{
			Name: asset.Get("name").String(),
			URL:  asset.Get("browser_download_url").String(),
			Size: asset.Get("size").Int(),
		})
		return true
	})

	return release, nil
}

// Check compares the latest release with running. The returned state has
// LatestRelease set only when the release is strictly newer and running is
// a release build.
func (c *Checker) Check(ctx context.Context, running string) (State, error) {
	if !version.IsRelease(running) {
		c.logger.Debug("skipping update check for dev build", zap.String("version", running))
		return State{Status: UpToDate}, nil
	}

	release, err := c.Latest(ctx)
	if err != nil {
		c.logger.Warn("update check failed", zap.String("repo", c.Repo), zap.Error(err))
		return State{Status: Failed, Err: err}, err
	}

	if !Newer(release.TagName, running) {
		c.logger.Info("running latest release", zap.String("version", running))
		return State{Status: UpToDate}, nil
	}

	c.logger.Info("update available",
		zap.String("running", running),
		zap.String("latest", release.TagName),
	)
	return State{LatestRelease: release, Status: Available}, nil
}

// Newer reports whether tag is a newer semantic version than running.
// Unparseable tags are never newer.
func Newer(tag, running string) bool {
	tag = version.Canonical(tag)
	running = version.Canonical(running)
	if !semver.IsValid(tag) || !semver.IsValid(running) {
		return false
	}
	return semver.Compare(tag, running) > 0
}

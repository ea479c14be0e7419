package selfupdate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Updater downloads a release asset and swaps it in for the running binary.
type Updater struct {
	HTTPClient *http.Client

	// Executable returns the path of the binary to replace.
	Executable func() (string, error)

	GOOS   string
	GOARCH string

	logger *zap.Logger
}

// NewUpdater creates an updater for the current platform and executable.
func NewUpdater(logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
		Executable: os.Executable,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		logger:     logger,
	}
}

// AssetFor picks the asset built for goos/goarch. Asset names must carry both
// as separate tokens, e.g. "uad-tui_linux_amd64" or "uad-tui_windows_amd64.exe",
// so "arm" never matches an "arm64" build. Checksum files are skipped.
func AssetFor(release *Release, goos, goarch string) (*Asset, error) {
	for i := range release.Assets {
		name := strings.ToLower(release.Assets[i].Name)
		if strings.HasSuffix(name, ".sha256") || strings.HasSuffix(name, ".txt") {
			continue
		}
		tokens := assetTokens(name)
		if tokens[goos] && tokens[goarch] {
			return &release.Assets[i], nil
		}
	}
	return nil, &NoAssetError{TagName: release.TagName, GOOS: goos, GOARCH: goarch}
}

func assetTokens(name string) map[string]bool {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}

// Apply downloads the platform asset of release next to the executable and
// renames it into place. The previous binary is kept as <exe>.old until the
// next successful update.
func (u *Updater) Apply(ctx context.Context, release *Release) error {
	if release == nil {
		return fmt.Errorf("no release to apply")
	}

	asset, err := AssetFor(release, u.GOOS, u.GOARCH)
	if err != nil {
		return err
	}

	exe, err := u.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	u.logger.Info("applying update",
		zap.String("tag", release.TagName),
		zap.String("asset", asset.Name),
		zap.String("executable", exe),
	)

	newPath := exe + ".new"
	if err := u.download(ctx, asset.URL, newPath); err != nil {
		_ = os.Remove(newPath)
		return err
	}

	oldPath := exe + ".old"
	_ = os.Remove(oldPath)
	// Windows cannot overwrite a running executable but can rename it.
	if err := os.Rename(exe, oldPath); err != nil {
		_ = os.Remove(newPath)
		return fmt.Errorf("failed to move current executable aside: %w", err)
	}
	if err := os.Rename(newPath, exe); err != nil {
		_ = os.Rename(oldPath, exe)
		return fmt.Errorf("failed to install new executable: %w", err)
	}

	u.logger.Info("update installed", zap.String("tag", release.TagName))
	return nil
}

func (u *Updater) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

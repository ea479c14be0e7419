package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releaseJSON = `{
  "tag_name": "v1.4.0",
  "name": "uad-tui 1.4.0",
  "html_url": "https://github.com/uad-ng/uad-tui/releases/tag/v1.4.0",
  "assets": [
    {"name": "checksums.txt", "browser_download_url": "%[1]s/checksums.txt", "size": 120},
    {"name": "uad-tui_linux_amd64", "browser_download_url": "%[1]s/uad-tui_linux_amd64", "size": 11},
    {"name": "uad-tui_windows_amd64.exe", "browser_download_url": "%[1]s/uad-tui_windows_amd64.exe", "size": 11}
  ]
}`

func releaseServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/uad-ng/uad-tui/releases/latest":
			if status != http.StatusOK {
				w.WriteHeader(status)
				return
			}
			_, _ = fmt.Fprintf(w, releaseJSON, srv.URL)
		case "/uad-tui_linux_amd64":
			_, _ = w.Write([]byte("new-binary!"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestChecker(srv *httptest.Server) *Checker {
	c := NewChecker("uad-ng/uad-tui", nil)
	c.BaseURL = srv.URL
	return c
}

func TestParseRelease(t *testing.T) {
	r, err := ParseRelease([]byte(fmt.Sprintf(releaseJSON, "https://dl")))
	require.NoError(t, err)

	assert.Equal(t, "v1.4.0", r.TagName)
	assert.Equal(t, "uad-tui 1.4.0", r.Name)
	require.Len(t, r.Assets, 3)
	assert.Equal(t, "https://dl/uad-tui_linux_amd64", r.Assets[1].URL)
	assert.EqualValues(t, 11, r.Assets[1].Size)
}

func TestParseRelease_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":    "<html>rate limited</html>",
		"missing tag": `{"name": "x"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRelease([]byte(body))
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestNewer(t *testing.T) {
	tests := []struct {
		tag, running string
		want         bool
	}{
		{"v1.4.0", "v1.3.9", true},
		{"1.4.0", "v1.4.0", false},
		{"v1.4.0", "v1.10.0", false},
		{"nightly", "v1.0.0", false},
		{"v2.0.0", "dev-20260101", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"_vs_"+tt.running, func(t *testing.T) {
			assert.Equal(t, tt.want, Newer(tt.tag, tt.running))
		})
	}
}

func TestChecker_Check(t *testing.T) {
	srv := releaseServer(t, http.StatusOK)
	c := newTestChecker(srv)

	t.Run("older running version gets the release", func(t *testing.T) {
		st, err := c.Check(context.Background(), "v1.3.0")
		require.NoError(t, err)
		require.NotNil(t, st.LatestRelease)
		assert.Equal(t, "v1.4.0", st.LatestRelease.TagName)
		assert.Equal(t, Available, st.Status)
	})

	t.Run("same version is up to date", func(t *testing.T) {
		st, err := c.Check(context.Background(), "v1.4.0")
		require.NoError(t, err)
		assert.Nil(t, st.LatestRelease)
		assert.Equal(t, UpToDate, st.Status)
	})

	t.Run("dev build is never offered an update", func(t *testing.T) {
		st, err := c.Check(context.Background(), "dev-20260101-120000")
		require.NoError(t, err)
		assert.Nil(t, st.LatestRelease)
	})
}

func TestChecker_CheckHTTPError(t *testing.T) {
	srv := releaseServer(t, http.StatusForbidden)
	c := newTestChecker(srv)

	st, err := c.Check(context.Background(), "v1.0.0")
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.StatusCode)
	assert.Equal(t, Failed, st.Status)
	assert.Nil(t, st.LatestRelease)
}

func TestAssetFor(t *testing.T) {
	r, err := ParseRelease([]byte(fmt.Sprintf(releaseJSON, "https://dl")))
	require.NoError(t, err)

	a, err := AssetFor(r, "windows", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "uad-tui_windows_amd64.exe", a.Name)

	_, err = AssetFor(r, "darwin", "arm64")
	var nae *NoAssetError
	assert.ErrorAs(t, err, &nae)
}

func TestAssetFor_ArchIsMatchedExactly(t *testing.T) {
	r := &Release{TagName: "v1.4.0", Assets: []Asset{
		{Name: "uad-tui_linux_arm64"},
		{Name: "uad-tui_linux_arm"},
		{Name: "uad-tui_linux_amd64.tar.gz"},
	}}

	tests := []struct {
		goarch string
		want   string
	}{
		{"arm", "uad-tui_linux_arm"},
		{"arm64", "uad-tui_linux_arm64"},
		{"amd64", "uad-tui_linux_amd64.tar.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.goarch, func(t *testing.T) {
			a, err := AssetFor(r, "linux", tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Name)
		})
	}

	_, err := AssetFor(r, "linux", "386")
	var nae *NoAssetError
	assert.ErrorAs(t, err, &nae)
}

func TestUpdater_Apply(t *testing.T) {
	srv := releaseServer(t, http.StatusOK)
	c := newTestChecker(srv)
	release, err := c.Latest(context.Background())
	require.NoError(t, err)

	exe := filepath.Join(t.TempDir(), "uad-tui")
	require.NoError(t, os.WriteFile(exe, []byte("old-binary"), 0755))

	u := NewUpdater(nil)
	u.GOOS, u.GOARCH = "linux", "amd64"
	u.Executable = func() (string, error) { return exe, nil }

	require.NoError(t, u.Apply(context.Background(), release))

	got, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "new-binary!", string(got))

	old, err := os.ReadFile(exe + ".old")
	require.NoError(t, err)
	assert.Equal(t, "old-binary", string(old))
}

func TestUpdater_ApplyErrors(t *testing.T) {
	u := NewUpdater(nil)
	assert.Error(t, u.Apply(context.Background(), nil))

	u.Executable = func() (string, error) { return "", errors.New("no exe") }
	u.GOOS, u.GOARCH = "linux", "amd64"
	err := u.Apply(context.Background(), &Release{TagName: "v1", Assets: []Asset{{Name: "uad-tui_linux_amd64"}}})
	assert.ErrorContains(t, err, "failed to locate executable")
}

func TestState_Transitions(t *testing.T) {
	st := State{LatestRelease: &Release{TagName: "v1.4.0"}, Status: Available}

	updating := st.StartUpdate()
	assert.Equal(t, Updating, updating.Status)
	assert.NotNil(t, updating.LatestRelease)

	failed := updating.Finish(errors.New("disk full"))
	assert.Equal(t, Failed, failed.Status)
	assert.NotNil(t, failed.LatestRelease, "a failed update stays on offer")

	done := updating.Finish(nil)
	assert.Equal(t, Updated, done.Status)
	assert.Nil(t, done.LatestRelease)

	assert.Equal(t, "Status(99)", Status(99).String())
}

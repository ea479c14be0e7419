package selfupdate

import (
	"fmt"
)

// HTTPError is a non-200 response from the release API or asset host.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// ParseError means the release API returned something we cannot read.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse release: %s (caused by: %v)", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to parse release: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NoAssetError means the release has no binary for this platform.
type NoAssetError struct {
	TagName string
	GOOS    string
	GOARCH  string
}

func (e *NoAssetError) Error() string {
	return fmt.Sprintf("release %s has no asset for %s/%s", e.TagName, e.GOOS, e.GOARCH)
}

// Package urls holds the external links shown to users: where to get adb,
// how to enable debugging on a phone, and where releases are published.
//
// Usage:
//
//	import "github.com/uad-ng/uad-tui/internal/urls"
//
//	fmt.Printf("Download adb from %s\n", urls.PlatformTools)
package urls

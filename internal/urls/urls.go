package urls

import "fmt"

// PlatformTools is where Google publishes adb for every desktop platform.
const PlatformTools = "https://developer.android.com/tools/releases/platform-tools"

// USBDebugging explains how to enable developer options and USB debugging.
const USBDebugging = "https://developer.android.com/studio/debug/dev-options"

// WirelessDebugging covers pairing a phone with adb over Wi-Fi.
const WirelessDebugging = "https://developer.android.com/tools/adb#wireless-android11-command-line"

// Repository returns the GitHub page of repo ("owner/name").
func Repository(repo string) string {
	return fmt.Sprintf("https://github.com/%s", repo)
}

// Releases returns the releases page of repo.
func Releases(repo string) string {
	return Repository(repo) + "/releases"
}

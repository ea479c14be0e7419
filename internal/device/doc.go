// Package device models the Android phones uad-tui manages and finds them.
//
// A Phone is identified by its adb serial; everything else is display data.
// Phones come from two places:
//
//   - the adb server, via `adb devices -l` (see ParseDevicesOutput)
//   - mDNS, for phones with Android 11+ wireless debugging switched on,
//     which advertise "_adb-tls-connect._tcp" services (see Scanner)
//
// Wireless endpoints found over mDNS still have to be `adb connect`ed before
// they appear in the adb device list; Merge combines both sources into the
// stable, de-duplicated list shown in the navigation bar.
//
// # Network Requirements
//
// mDNS needs multicast on the local segment (UDP 5353). The scanner is safe
// for concurrent use; each scan owns its own resolver.
package device

// Package selfupdate checks GitHub for a newer uad-tui release and replaces
// the running binary with it.
//
// The navigation bar only needs State: whether a newer release is known
// (LatestRelease) and whether it is being applied right now (Status). The
// Checker fills the first half, the Updater drives the second.
//
// Only release builds are offered updates; a dev build never reports a
// LatestRelease, so its navigation bar shows the plain version string.
package selfupdate

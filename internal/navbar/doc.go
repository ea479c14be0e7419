// Package navbar decides what the top navigation bar shows.
//
// Compose maps the current application state (connected phones, the
// selected phone, the app list loading state and the self-update state) to a
// Description: an ordered list of toolkit-neutral controls plus layout
// directives. It has no side effects and never fails; rendering the
// Description is left to internal/ui, and handling the Events its controls
// emit is left to internal/tui.
//
// # Layout
//
// With a phone selected:
//
//	[refresh] [Reboot] [‹ phone ›] <spacer> version [Update] [Apps] [About] [Settings]
//
// Without one:
//
//	[Reboot] [refresh] status text <spacer> version [Update] [Apps] [About] [Settings]
//
// The refresh/reboot order differs between the two on purpose and must be
// kept. The Update button is always present; when no release is pending it
// is an invisible, zero-size, non-interactive placeholder so the controls to
// its right do not move when an update appears.
//
// # Forward compatibility
//
// Any loading state other than apps.FindingPhones and any self-update status
// other than selfupdate.Updating, including values added later, take the
// default branch.
//
// # Preconditions
//
// The selected phone is expected to be one of the listed phones. Compose does
// not check this; an orphan selection is shown in the picker as-is.
package navbar

// Package ui renders uad-tui output with Lipgloss.
//
// It has two halves:
//
//   - RenderNavBar turns a navbar.Description into one styled terminal line.
//     It is the only place that knows how navigation controls look; the
//     composer in internal/navbar stays toolkit-neutral.
//   - Header, Result and Printer render the boxed output of the one-shot
//     sub-commands (devices, check-update, reboot).
//
// Sizes in a navbar.Description are abstract units; the renderer maps five
// units to one terminal cell.
package ui

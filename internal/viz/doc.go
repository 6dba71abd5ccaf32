// Package viz provides the terminal presentation layer of the renderer.
//
//   - [Theme] and [Styles]: lipgloss color schemes for command output
//   - [Canvas]: Braille-based pixel canvas for density and trace previews
//   - [ProgressModel]: Bubble Tea view of a running render with its
//     elapsed time
//
// Library packages never print; commands format their output through the
// styles defined here.
package viz

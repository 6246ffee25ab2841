// Package ui implements the result view as a Bubble Tea model.
//
// # Lifecycle
//
// A ResultView is created in the Loading state. Init mounts it and returns a
// command that performs one bridge call; the runtime runs that command on its
// own goroutine and delivers the outcome to Update as a message. Update
// resolves the view's result cell once, to Success with the returned text or
// to Failure with the fixed message. Further Init calls, re-renders and
// outcome messages leave the state alone.
//
// Unmount closes the view's scope. A call still running when the view is
// unmounted completes normally, but its command yields no message and Update
// ignores any outcome that arrives afterwards.
//
// # Rendering
//
// View centres a panel holding the heading and the display text, with a
// spinner beside the heading while loading and a key help footer. RenderPlain
// produces the same content without styling for non-terminal output.
//
// # Keys
//
//   - q, esc, ctrl+c: unmount and quit
//   - ?, h: toggle the full help
//   - T: cycle theme (Nightfox, Kanagawa, Slate)
//
// Theme and help preferences are saved through the prefs package.
package ui

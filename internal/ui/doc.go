// Package ui renders a tabspace workspace with Bubble Tea and turns user
// gestures into layout.Store operations.
//
// Core abstractions:
//   - View: a screen or major UI region with its own update and view (Elm-style)
//   - WorkspaceView: the panel row; owns mouse drag-and-drop and layout commands
//   - Region: on-screen bounds of a panel and its tab labels, used for hit testing
//   - KeybindRegistry/KeyHandler: leader-key (SPC) bindings mapped to messages
//   - OverlayStack: modal views (the catalog picker), each closed by its dismiss key
//
// Every message that mutates the store returns settleCmd. Bubble Tea renders
// the new frame before the resulting settleMsg is delivered, and its handler
// runs Store.Settle, the deferred second phase of the operation.
package ui

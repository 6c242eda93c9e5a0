// Package layout holds the panel/tab tree of a workspace and every structural
// mutation on it.
//
// A Store owns an ordered list of panels. Each panel owns an ordered list of
// tabs, exactly one of which is showing. Operations run in two phases: the
// exported method mutates the tree synchronously, and any follow-up work
// (registry rebuilds, deferred focus, initialization marking) is queued until
// the caller invokes Settle, normally right after the UI has rendered the
// result of phase one.
//
// A Store is not safe for concurrent use. It is meant to be driven from a
// single event loop such as a Bubble Tea Update function.
package layout

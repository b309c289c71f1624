// Package results tracks local edits to a patient case's clinical and
// paraclinical test results and turns them into the operation list the
// backend applies on submission.
//
// Each result kind is held in its own Set, an ordered slice of entries
// addressed by position. Every entry carries an explicit intent:
//
//	loaded from the server   -> UPDATE  (remove -> REMOVE tombstone)
//	added locally (no id)    -> CREATE  (remove -> deleted outright)
//
// Field edits never change the intent. Tombstones stay in the Set so the
// server is told to delete them, but Visible hides them.
//
// All Set methods are pure: they return a new Set and leave the receiver
// untouched, so a caller can keep the previous state when an external step
// (upload, submission) fails.
package results

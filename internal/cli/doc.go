// Package cli is the interactive interview recorder.
//
// It wires configuration, a sheet backend and the record store, then runs a
// REPL in which the interviewer lists and searches interviewees, picks one,
// edits that person's answers as a draft and saves it. A failed save keeps
// the draft so it can be retried.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user
// exits or in is exhausted.
package cli

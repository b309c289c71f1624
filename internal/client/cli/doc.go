// Package cli provides the casekeeper command-line client.
//
// It wires configuration, the local store, the backend API client and the
// application services, and exposes them through a cobra command tree. The
// default command is an interactive shell (see runREPL) that drives a
// test-result editing session for one patient case at a time.
package cli

// Package sync implements the agent directory transfer logic.
//
// A sync is computed in two phases. Plan walks the source tree and produces
// the ordered set of file operations; in mirror mode it also walks the
// destination to find stale files. Execute applies a plan: deletions first,
// then copies, so a freshly copied file can never be removed by the delete
// pass. Dry-run execution reports the same counts without touching the
// filesystem.
//
// The copy policy is source-wins: every source file is copied on every run,
// with no timestamp or hash comparison. Copies preserve permission bits but
// are not atomic per file; a crash mid-copy can leave a partially written
// destination file.
package sync

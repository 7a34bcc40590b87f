// Package combine orchestrates merge runs over many file groups.
//
// The Service fans groups out to a bounded worker pool, streams each one
// through the merge engine and applies the union to incomplete members.
// Every group lands in exactly one of four states: merged, skipped
// (already complete), failed (members conflict) or error. Failures and
// errors are logged and counted, never propagated, so one broken group
// cannot stop a long run.
//
// Counters are plain atomics shared by the workers; the Summary returned
// by Run is a snapshot taken after the pool drains, so it is safe to
// read without synchronization.
package combine

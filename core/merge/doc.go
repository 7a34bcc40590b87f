// Package merge synthesizes the most complete version of a file from
// several partial copies and materializes it atomically.
//
// Copies of interest come from interrupted downloads: each member holds
// the same payload with unfetched regions left as runs of zero bytes.
// Under that model the bitwise OR of all members reconstructs every
// byte any member managed to fetch.
//
// # Union And Conflicts
//
// The Engine reads all members in lockstep, one chunk at a time, and
// ORs the chunks into a union buffer. Every member byte must then be
// either zero or equal to the union byte at the same offset. A byte
// that is neither proves the members did not come from the same
// payload, so the engine reports a Conflict and the group is abandoned
// with no output. Members that match the union everywhere are complete;
// the rest are the merge's beneficiaries.
//
// Chunks are compared eight bytes at a time and fall back to byte
// granularity only around a mismatching word, which keeps the common
// all-equal case close to memcmp speed.
//
// # Applying
//
// Apply copies the union content to each incomplete member, either over
// the member itself or to a sidecar next to it. Content is staged in a
// temporary file in the destination's directory, synced and renamed
// into place. Readers of the destination therefore see the old bytes or
// all of the new ones, never a truncated mix. Complete members are
// never opened for writing.
//
// The engine holds the union in a temporary file rather than memory, so
// group size is bounded by disk, not RAM. Callers must Close the Report
// to release it.
package merge

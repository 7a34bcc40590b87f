// Package scan discovers candidate files under a directory tree and
// groups the ones that look like copies of the same payload.
//
// # Discovery
//
// Collect walks the tree once and keeps every regular file strictly
// larger than the configured threshold. Small files are not worth the
// lockstep read a merge costs, and directories, symlinks and other
// non-regular entries never qualify. Only a failure on the root itself
// aborts the walk; anything below it is logged and skipped.
//
// # Grouping
//
// GroupBy buckets candidates by a Key derived from the configured key
// mode: base name plus byte length by default, or byte length alone for
// renamed copies. Size-only grouping can pull unrelated files of equal
// length into one group; that is accepted, since the merge engine
// rejects groups whose contents disagree. Both groups and their members
// come out sorted, so two scans over the same tree always produce the
// same plan.
package scan

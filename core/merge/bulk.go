package merge

import "encoding/binary"

// orBytes folds src into dst with a bitwise OR, eight bytes at a time.
// Both slices must have the same length.
func orBytes(dst, src []byte) {
	n := len(dst) &^ 7
	for i := 0; i < n; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], d|s)
	}
	for i := n; i < len(dst); i++ {
		dst[i] |= src[i]
	}
}

// checkChunk compares one member's chunk against the union chunk.
// identical reports whether every byte matches the union. conflict is
// the chunk-relative offset of the first byte that is neither zero nor
// the union value, or -1 when the member is compatible with the union.
//
// Whole words are compared first; bytes are only unpacked for words
// that disagree and for the unaligned tail.
func checkChunk(member, union []byte) (identical bool, conflict int) {
	identical = true
	n := len(member) &^ 7
	for i := 0; i < n; i += 8 {
		m := binary.LittleEndian.Uint64(member[i:])
		u := binary.LittleEndian.Uint64(union[i:])
		if m == u {
			continue
		}
		identical = false
		for j := i; j < i+8; j++ {
			if member[j] != union[j] && member[j] != 0 {
				return false, j
			}
		}
	}
	for i := n; i < len(member); i++ {
		if member[i] == union[i] {
			continue
		}
		identical = false
		if member[i] != 0 {
			return false, i
		}
	}
	return identical, -1
}

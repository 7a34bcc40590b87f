package merge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Lengths around word boundaries exercise both the eight-byte path
	// and the tail loop.
	for _, size := range []int{0, 1, 7, 8, 9, 15, 16, 17, 40, 129} {
		dst := make([]byte, size)
		src := make([]byte, size)
		rng.Read(dst)
		rng.Read(src)

		want := make([]byte, size)
		for i := range want {
			want[i] = dst[i] | src[i]
		}

		orBytes(dst, src)
		assert.Equal(t, want, dst, "size %d", size)
	}
}

func TestCheckChunk(t *testing.T) {
	tests := []struct {
		name          string
		member        []byte
		union         []byte
		wantIdentical bool
		wantConflict  int
	}{
		{
			name:          "identical",
			member:        []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantIdentical: true,
			wantConflict:  -1,
		},
		{
			name:          "zero gap is compatible",
			member:        []byte{1, 0, 0, 4, 5, 6, 7, 8, 0, 10},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantIdentical: false,
			wantConflict:  -1,
		},
		{
			name:          "all zero member",
			member:        make([]byte, 12),
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			wantIdentical: false,
			wantConflict:  -1,
		},
		{
			name:          "conflict inside a word",
			member:        []byte{1, 2, 3, 9, 5, 6, 7, 8},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8},
			wantIdentical: false,
			wantConflict:  3,
		},
		{
			name:          "conflict in unaligned tail",
			member:        []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 99, 11},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			wantIdentical: false,
			wantConflict:  9,
		},
		{
			name: "bit subset still conflicts",
			// 0x01 survives an OR into 0x03 but is not the union value, so
			// the member cannot be a zero-hole copy of the payload.
			member:        []byte{0x01, 0, 0, 0, 0, 0, 0, 0},
			union:         []byte{0x03, 0, 0, 0, 0, 0, 0, 0},
			wantIdentical: false,
			wantConflict:  0,
		},
		{
			name:          "first conflict wins",
			member:        []byte{1, 9, 3, 4, 5, 6, 7, 8, 99, 10},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantIdentical: false,
			wantConflict:  1,
		},
		{
			name:          "gap before conflict in same word",
			member:        []byte{0, 9, 3, 4, 5, 6, 7, 8},
			union:         []byte{1, 2, 3, 4, 5, 6, 7, 8},
			wantIdentical: false,
			wantConflict:  1,
		},
		{
			name:          "empty",
			member:        []byte{},
			union:         []byte{},
			wantIdentical: true,
			wantConflict:  -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identical, conflict := checkChunk(tt.member, tt.union)
			assert.Equal(t, tt.wantIdentical, identical)
			assert.Equal(t, tt.wantConflict, conflict)
		})
	}
}

package scan

// Key modes for grouping candidate files.
const (
	// KeyNameSize groups candidates sharing base name and byte length.
	KeyNameSize = "name-size"
	// KeySize groups candidates by byte length alone.
	KeySize = "size"
)

// Config holds configuration for candidate discovery and grouping.
type Config struct {
	// MinSize is the candidate threshold in bytes; only files strictly
	// larger are considered.
	MinSize int64 `mapstructure:"min_size" default:"1048576"`
	// KeyMode controls how candidates are grouped (name-size, size).
	KeyMode string `mapstructure:"key_mode" default:"name-size"`
}

// IsValidKeyMode checks if the configured key mode is recognized.
func (c Config) IsValidKeyMode() bool {
	switch c.KeyMode {
	case KeyNameSize, KeySize:
		return true
	default:
		return false
	}
}

package merge

// Config holds configuration for the merge engine and apply step.
type Config struct {
	// ChunkSize is the streaming chunk size in bytes.
	ChunkSize int `mapstructure:"chunk_size" default:"1048576"`
	// Workers caps how many groups are processed concurrently
	// (0 = one per CPU).
	Workers int `mapstructure:"workers" default:"0"`
	// Replace overwrites incomplete copies in place instead of writing
	// sidecar files next to them.
	Replace bool `mapstructure:"replace" default:"false"`
}

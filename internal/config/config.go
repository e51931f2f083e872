package config

// BenchConfig describes the workload run by the bench command.
type BenchConfig struct {
	// Name is the name of the root phase in the gathered document.
	Name string `json:"name" yaml:"name"`

	// BufferSize is the number of bytes allocated per iteration.
	BufferSize int `json:"bufferSize" yaml:"bufferSize"`

	// Iterations is how many times the workload runs.
	Iterations int `json:"iterations" yaml:"iterations"`

	// Output is an optional path the JSON document is written to.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// DefaultBenchConfig returns the configuration used when no config
// file is given.
func DefaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		Name:       "Example",
		BufferSize: 1000000,
		Iterations: 1,
	}
}

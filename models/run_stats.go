package models

// RunStats accumulates run-wide state. It is owned by the single pipeline
// goroutine and passed explicitly; there is no ambient global state.
type RunStats struct {
	// Converted counts successfully written pages.
	Converted int

	// Directories lists every relative directory seen during path
	// resolution, in order. Consumed by the index rename pass.
	Directories []string
}

// AddDirectory records a directory for the end-of-run rename pass.
func (s *RunStats) AddDirectory(dir string) {
	s.Directories = append(s.Directories, dir)
}

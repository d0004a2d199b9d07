package config

// EvalSettings holds static-evaluation settings. Tempo is decoded and
// printed with the rest of the configuration; the eval package does
// not read it. The struct exists as its own file (rather than folded
// into Settings directly) to match the teacher's one-concern-per-file
// config layout, leaving room to grow without touching config.go.
type EvalSettings struct {
	Tempo int
}

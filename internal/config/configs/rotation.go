package configs

import "time"

// Rotation configures the sweep schedule and the headline corpus.
type Rotation struct {
	// CorpusPath points at the newline-delimited headline file.
	CorpusPath string `env:"CORPUS_PATH" envDefault:"headline.txt"`
	// CycleInterval is the fixed wall-clock interval between sweeps. A
	// cycle always runs to completion before the next one starts.
	CycleInterval time.Duration `env:"CYCLE_INTERVAL" envDefault:"1h"`
	// UpdatePause is the delay between consecutive creative updates within
	// one cycle, respecting the remote rate limit.
	UpdatePause time.Duration `env:"UPDATE_PAUSE" envDefault:"5s"`
	// RunOnStart triggers a sweep immediately at process start instead of
	// waiting a full interval.
	RunOnStart bool `env:"RUN_ON_START" envDefault:"true"`
}

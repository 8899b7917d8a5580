package tasks

import "time"

// Config holds the queue settings that come from TASK_* variables.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // Claimed tasks older than this go back to the queue
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

package history

import "time"

// Run represents one recorded timing run of a target file.
type Run struct {
	ID       int64
	File     string
	Language string
	Status   string
	Runtime  time.Duration
	RanAt    time.Time
}

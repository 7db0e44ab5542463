package queue

import "time"

// Progress is a point-in-time snapshot of a queue's processing state.
type Progress struct {
	// HasStarted reports whether processing has begun.
	HasStarted bool

	// HasFinished reports whether the last item has been dequeued.
	HasFinished bool

	// StartTime is when the first item was dequeued.
	StartTime time.Time

	// FinishTime is when the last item was dequeued.
	FinishTime time.Time

	// ProgressPct is the processed share of all items, from 0 to 100.
	ProgressPct float64

	TotalItems      int
	ProcessedItems  int
	InProgressItems int
	SuccessItems    int
	SkippedItems    int

	// ETA is the projected completion time, while items remain.
	ETA time.Time

	// TimeLeft is the projected remaining duration, while items remain.
	TimeLeft time.Duration

	// TransferSpeed is the processing rate in TransferSpeedUnit. Queues
	// with recorded byte transfers report bytes/sec, items/sec otherwise.
	TransferSpeed     float64
	TransferSpeedUnit string
}

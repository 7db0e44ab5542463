package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DecisionSuccess is returned by a processFunc when an operation was
	// processed.
	DecisionSuccess = 1

	// DecisionSkipped is returned by a processFunc when an operation was
	// skipped.
	DecisionSkipped = 0

	// DecisionRequeue is returned by a processFunc when an operation needs
	// requeueing.
	DecisionRequeue = -1
)

// OperationQueue is a thread-safe queue of filesystem [Operation] items,
// tracking per-item outcomes and overall progress.
type OperationQueue struct {
	sync.RWMutex
	hasStarted       bool
	hasFinished      bool
	startTime        time.Time
	finishTime       time.Time
	head             int
	items            []*Operation
	success          []*Operation
	skipped          []*Operation
	inProgress       map[*Operation]struct{}
	bytesTransferred uint64
}

// NewOperationQueue returns a pointer to a new [OperationQueue].
func NewOperationQueue() *OperationQueue {
	return &OperationQueue{
		inProgress: make(map[*Operation]struct{}),
	}
}

// HasRemainingItems returns whether a queue has remaining items to process.
func (q *OperationQueue) HasRemainingItems() bool {
	q.RLock()
	defer q.RUnlock()

	if q.head >= len(q.items) {
		return false
	}

	return true
}

// GetSuccessful returns a copy of the internal slice holding all successful
// operations.
func (q *OperationQueue) GetSuccessful() []*Operation {
	q.RLock()
	defer q.RUnlock()

	result := make([]*Operation, len(q.success))
	copy(result, q.success)

	return result
}

// GetSkipped returns a copy of the internal slice holding all skipped
// operations.
func (q *OperationQueue) GetSkipped() []*Operation {
	q.RLock()
	defer q.RUnlock()

	result := make([]*Operation, len(q.skipped))
	copy(result, q.skipped)

	return result
}

// Enqueue adds operations to the queue.
func (q *OperationQueue) Enqueue(items ...*Operation) {
	q.Lock()
	defer q.Unlock()

	if q.hasFinished {
		q.finishTime = time.Time{}
		q.hasFinished = false
	}

	for _, item := range items {
		delete(q.inProgress, item)
		q.items = append(q.items, item)
	}
}

// Dequeue returns an operation from the queue and advances the queue head.
func (q *OperationQueue) Dequeue() (*Operation, bool) {
	q.Lock()
	defer q.Unlock()

	if q.head >= len(q.items) {
		return nil, false
	}

	if q.head == len(q.items)-1 {
		if !q.hasFinished {
			q.finishTime = time.Now()
			q.hasFinished = true
		}
	}

	if !q.hasStarted {
		q.startTime = time.Now()
		q.hasStarted = true
	}

	item := q.items[q.head]
	q.head++

	return item, true
}

// SetSuccess sets given in-progress operations as successfully processed.
// The operations are removed from the in-progress map in the process.
func (q *OperationQueue) SetSuccess(items ...*Operation) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.success = append(q.success, item)
	}
}

// SetSkipped sets given in-progress operations as skipped. The operations
// are removed from the in-progress map in the process.
func (q *OperationQueue) SetSkipped(items ...*Operation) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.skipped = append(q.skipped, item)
	}
}

// SetProcessing sets given operations as in progress (processing).
func (q *OperationQueue) SetProcessing(items ...*Operation) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		q.inProgress[item] = struct{}{}
	}
}

// AddBytesTransferred adds given transferred bytes to the total amount
// transferred for the [OperationQueue].
func (q *OperationQueue) AddBytesTransferred(bytes uint64) {
	q.Lock()
	defer q.Unlock()

	q.bytesTransferred += bytes
}

// Progress returns the [Progress] for the [OperationQueue].
func (q *OperationQueue) Progress() Progress {
	q.RLock()
	defer q.RUnlock()

	hasStarted := q.hasStarted
	totalItems := len(q.items)

	processedItems := len(q.success) + len(q.skipped)
	processedItems = min(processedItems, totalItems)

	var progressPct float64
	if totalItems > 0 {
		progressPct = float64(processedItems) / float64(totalItems) * 100 //nolint:mnd
		progressPct = max(float64(0), min(progressPct, float64(100)))     //nolint:mnd
	}

	var eta time.Time
	var timeLeft time.Duration

	var transferSpeed float64
	transferSpeedUnit := "items/sec"

	if hasStarted && processedItems > 0 && processedItems < totalItems {
		elapsed := time.Since(q.startTime)
		itemsPerSec := float64(processedItems) / max(elapsed.Seconds(), 1)

		if itemsPerSec > 0 {
			remainingItems := totalItems - processedItems
			remainingSeconds := float64(remainingItems) / itemsPerSec
			timeLeft = time.Duration(remainingSeconds * float64(time.Second))
			eta = time.Now().Add(timeLeft)
			transferSpeed = itemsPerSec
		}

		if q.bytesTransferred > 0 {
			if bytesPerSec := float64(q.bytesTransferred) / max(elapsed.Seconds(), 1); bytesPerSec > 0 {
				transferSpeed = bytesPerSec
				transferSpeedUnit = "bytes/sec"
			}
		}
	}

	return Progress{
		HasStarted:        hasStarted,
		HasFinished:       q.hasFinished,
		StartTime:         q.startTime,
		FinishTime:        q.finishTime,
		ProgressPct:       progressPct,
		TotalItems:        totalItems,
		ProcessedItems:    processedItems,
		InProgressItems:   len(q.inProgress),
		SuccessItems:      len(q.success),
		SkippedItems:      len(q.skipped),
		ETA:               eta,
		TimeLeft:          timeLeft,
		TransferSpeed:     transferSpeed,
		TransferSpeedUnit: transferSpeedUnit,
	}
}

// DequeueAndProcess sequentially dequeues and processes operations using the
// given processFunc. An error is only returned in case of a context
// cancellation, the processFunc is otherwise expected to return only an
// integer with the processing function's decision for that operation.
//
// Possible decisions to be returned: [DecisionSuccess], [DecisionSkipped],
// [DecisionRequeue].
func (q *OperationQueue) DequeueAndProcess(ctx context.Context, processFunc func(*Operation) int) error {
	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := q.Dequeue()
		if !ok {
			break
		}

		q.SetProcessing(item)

		switch processFunc(item) {
		case DecisionRequeue:
			q.Enqueue(item)

		case DecisionSkipped:
			q.SetSkipped(item)

		case DecisionSuccess:
			q.SetSuccess(item)
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-proc) %w", ctx.Err())
	}

	return nil
}

// DequeueAndProcessConc concurrently dequeues and processes operations using
// given processFunc. An error is only returned in case of a context
// cancellation, the processFunc is otherwise expected to return only an
// integer with the processing function's decision for that operation.
//
// Possible decisions to be returned: [DecisionSuccess], [DecisionSkipped],
// [DecisionRequeue].
//
// It is the responsibility of the processFunc to ensure thread-safety for
// anything happening inside the processFunc, with the [OperationQueue] only
// guaranteeing thread-safety for itself.
func (q *OperationQueue) DequeueAndProcessConc(ctx context.Context, maxWorkers int, processFunc func(*Operation) int) error {
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, maxWorkers)

LOOP:
	for {
		select {
		case <-ctx.Done():
			wg.Wait()

			return fmt.Errorf("(queue-concproc) %w", ctx.Err())
		case semaphore <- struct{}{}:
		}

		item, ok := q.Dequeue()
		if !ok {
			<-semaphore

			break
		}

		wg.Add(1)
		go func(item *Operation) {
			defer wg.Done()
			defer func() { <-semaphore }()

			q.SetProcessing(item)

			switch processFunc(item) {
			case DecisionRequeue:
				q.Enqueue(item)

			case DecisionSkipped:
				q.SetSkipped(item)

			case DecisionSuccess:
				q.SetSuccess(item)
			}
		}(item)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-concproc) %w", ctx.Err())
	}

	if q.HasRemainingItems() {
		// In case item(s) were requeued but all workers have already left.
		goto LOOP
	}

	return nil
}

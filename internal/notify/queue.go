// Package notify delivers assignment emails off the request path. Mutations
// enqueue and move on: a full queue or a failed send is logged, never
// surfaced to the caller.
package notify

import (
	"log/slog"
	"sync"
)

const defaultQueueSize = 64

// Queue buffers outbound notifications and drains them on a worker
// goroutine.
type Queue struct {
	mailer Mailer
	ch     chan Assignment
	wg     sync.WaitGroup
}

// NewQueue starts a queue worker in front of mailer. A nil mailer disables
// sending entirely (notifications are logged and dropped).
func NewQueue(mailer Mailer, size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	q := &Queue{
		mailer: mailer,
		ch:     make(chan Assignment, size),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.wg.Done()
	for a := range q.ch {
		if q.mailer == nil {
			slog.Debug("notification skipped, mailer not configured", "to", a.To, "task_id", a.TaskID)
			continue
		}
		if err := q.mailer.SendTaskAssignment(a); err != nil {
			slog.Warn("failed to send assignment notification", "to", a.To, "task_id", a.TaskID, "error", err)
			continue
		}
		slog.Info("assignment notification sent", "to", a.To, "task_id", a.TaskID)
	}
}

// Enqueue hands a notification to the worker without blocking; when the
// buffer is full the notification is dropped and logged.
func (q *Queue) Enqueue(a Assignment) {
	select {
	case q.ch <- a:
	default:
		slog.Warn("notification queue full, dropping", "to", a.To, "task_id", a.TaskID)
	}
}

// Close stops accepting notifications and waits for the worker to drain.
func (q *Queue) Close() {
	close(q.ch)
	q.wg.Wait()
}

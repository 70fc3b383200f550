package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []Assignment
	err  error
}

func (m *captureMailer) SendTaskAssignment(a Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, a)
	return nil
}

func (m *captureMailer) delivered() []Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Assignment(nil), m.sent...)
}

func TestQueueDeliversInOrder(t *testing.T) {
	mailer := &captureMailer{}
	q := NewQueue(mailer, 8)

	q.Enqueue(Assignment{To: "a@example.com", TaskID: "1"})
	q.Enqueue(Assignment{To: "b@example.com", TaskID: "2"})
	q.Close()

	sent := mailer.delivered()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
}

func TestQueueSwallowsSendFailures(t *testing.T) {
	mailer := &captureMailer{err: errors.New("smtp down")}
	q := NewQueue(mailer, 8)

	// Must not panic or block the producer.
	q.Enqueue(Assignment{To: "a@example.com", TaskID: "1"})
	q.Close()

	assert.Empty(t, mailer.delivered())
}

func TestQueueNilMailerDrops(t *testing.T) {
	q := NewQueue(nil, 1)

	done := make(chan struct{})
	go func() {
		q.Enqueue(Assignment{To: "a@example.com"})
		q.Enqueue(Assignment{To: "b@example.com"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked with nil mailer")
	}
	q.Close()
}

package engine

import "math/rand"

// KindSource supplies the stream of piece kinds a Board spawns.
// Next consumes the front kind; Peek returns it without consuming.
// A source with nothing upcoming returns KindNone from Peek.
type KindSource interface {
	Next() Kind
	Peek() Kind
}

// queueDepth is the lookahead buffer size kept by Queue.
const queueDepth = 2

// Queue is a KindSource drawing each kind independently and uniformly.
// There is no bag fairness: the same kind may repeat any number of times.
type Queue struct {
	rng *rand.Rand
	buf []Kind
}

// NewQueue creates a queue pre-filled with two random kinds so Peek is valid
// immediately.
func NewQueue(rng *rand.Rand) *Queue {
	q := &Queue{
		rng: rng,
		buf: make([]Kind, 0, queueDepth+1),
	}
	for range queueDepth {
		q.buf = append(q.buf, q.draw())
	}
	return q
}

// Next returns and consumes the front kind, topping the buffer up first so
// at least one kind remains afterwards.
func (q *Queue) Next() Kind {
	if len(q.buf) <= 1 {
		q.buf = append(q.buf, q.draw())
	}
	k := q.buf[0]
	q.buf = q.buf[1:]
	return k
}

// Peek returns the front kind without consuming it.
func (q *Queue) Peek() Kind {
	if len(q.buf) == 0 {
		return KindNone
	}
	return q.buf[0]
}

// Len returns the number of buffered kinds.
func (q *Queue) Len() int {
	return len(q.buf)
}

func (q *Queue) draw() Kind {
	return Kind(q.rng.Intn(kindCount)) + KindI
}

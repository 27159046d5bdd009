package solver

// ring is a growable FIFO ring buffer of arena indices.
// push and pop are amortized O(1).
type ring struct {
	buf  []int32
	head int // index of the front element
	n    int // number of queued elements
}

func newRing(capacity int) *ring {
	if capacity < 4 {
		capacity = 4
	}
	return &ring{buf: make([]int32, capacity)}
}

func (q *ring) Len() int { return q.n }

func (q *ring) push(v int32) {
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
}

// pop removes and returns the front element. It panics on an empty ring.
func (q *ring) pop() int32 {
	if q.n == 0 {
		panic("solver: pop from empty queue")
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return v
}

// grow doubles the buffer, unrolling the contents to start at index 0.
func (q *ring) grow() {
	next := make([]int32, 2*len(q.buf))
	k := copy(next, q.buf[q.head:])
	copy(next[k:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}

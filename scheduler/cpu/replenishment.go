package cpu

// replenishmentHandle names a slot of a replenishmentQueue. Slots are
// numbered from 1 so the zero handle of a fresh Share means "no record".
type replenishmentHandle int

// replenishment gives claim time a share consumed back to it once delay
// more time has passed after its predecessor in the queue matured.
type replenishment struct {
	share *Share
	owed  uint
	delay uint
	live  bool
}

// replenishmentQueue is a fixed capacity arena of replenishment records in
// maturity order. Records are delta encoded, total is the time until the
// last one matures. Each share has at most one record, later consumption is
// merged into it.
type replenishmentQueue struct {
	slots []replenishment
	free  []replenishmentHandle
	order []replenishmentHandle
	total uint
}

func newReplenishmentQueue(capacity int) *replenishmentQueue {
	q := &replenishmentQueue{
		slots: make([]replenishment, capacity),
		free:  make([]replenishmentHandle, 0, capacity),
		order: make([]replenishmentHandle, 0, capacity),
	}
	for h := capacity; h > 0; h-- {
		q.free = append(q.free, replenishmentHandle(h))
	}
	return q
}

func (q *replenishmentQueue) len() int { return len(q.order) }

func (q *replenishmentQueue) get(h replenishmentHandle) *replenishment {
	if h <= 0 || int(h) > len(q.slots) || !q.slots[h-1].live {
		trap("replenishment %d is not live", h)
	}
	return &q.slots[h-1]
}

// owed sums the claim time waiting in the queue.
func (q *replenishmentQueue) owed() uint {
	var sum uint
	for _, h := range q.order {
		sum += q.slots[h-1].owed
	}
	return sum
}

// push queues a record for s that matures at the given absolute time from
// now, or right behind the current tail if that is later.
func (q *replenishmentQueue) push(s *Share, owed, at uint) replenishmentHandle {
	if s.debt != 0 {
		trap("share %s already owns replenishment %d", s, s.debt)
	}
	if len(q.free) == 0 {
		trap("replenishment arena of %d records exhausted", len(q.slots))
	}
	h := q.free[len(q.free)-1]
	q.free = q.free[:len(q.free)-1]

	var delay uint
	if at > q.total {
		delay = at - q.total
	}
	q.slots[h-1] = replenishment{share: s, owed: owed, delay: delay, live: true}
	q.order = append(q.order, h)
	q.total += delay
	s.debt = h
	return h
}

// discard drops the record of s, if any. Its delay moves to the successor
// so that later records keep their maturity time.
func (q *replenishmentQueue) discard(s *Share) bool {
	if s.debt == 0 {
		return false
	}
	h := s.debt
	r := q.get(h)
	for i, o := range q.order {
		if o != h {
			continue
		}
		if i+1 < len(q.order) {
			q.slots[q.order[i+1]-1].delay += r.delay
		} else {
			q.total -= r.delay
		}
		q.order = append(q.order[:i], q.order[i+1:]...)
		break
	}
	q.release(h)
	return true
}

// advance lets elapsed time pass and hands every record that matured to
// credit, in maturity order.
func (q *replenishmentQueue) advance(elapsed uint, credit func(*Share, uint)) int {
	matured := 0
	for len(q.order) > 0 {
		h := q.order[0]
		r := q.get(h)
		if r.delay > elapsed {
			r.delay -= elapsed
			q.total -= elapsed
			return matured
		}
		elapsed -= r.delay
		q.total -= r.delay
		s, owed := r.share, r.owed
		q.order = q.order[1:]
		q.release(h)
		credit(s, owed)
		matured++
	}
	return matured
}

func (q *replenishmentQueue) release(h replenishmentHandle) {
	r := &q.slots[h-1]
	r.share.debt = 0
	*r = replenishment{}
	q.free = append(q.free, h)
}

// each visits the live records in maturity order with their absolute
// maturity time.
func (q *replenishmentQueue) each(f func(s *Share, owed, at uint)) {
	var at uint
	for _, h := range q.order {
		r := &q.slots[h-1]
		at += r.delay
		f(r.share, r.owed, at)
	}
}

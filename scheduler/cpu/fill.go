package cpu

// filler picks the fill share to run when no claim is due. fills holds the
// ready shares in round robin order.
type filler interface {
	pick(fills *shareList) *Share
}

func newFiller(p FillPolicy) filler {
	if p == RoundRobinFill {
		return roundRobinFiller{}
	}
	return priorityFiller{}
}

// roundRobinFiller runs the fill list in order regardless of priority.
type roundRobinFiller struct{}

func (roundRobinFiller) pick(fills *shareList) *Share {
	return fills.head()
}

// priorityFiller runs the first of the highest priority fills and moves it
// to the head of the list, so its slice is accounted like a round robin turn.
type priorityFiller struct{}

func (priorityFiller) pick(fills *shareList) *Share {
	best := fills.head()
	if best == nil {
		return nil
	}
	fills.each(func(s *Share) {
		if s.prio > best.prio {
			best = s
		}
	})
	fills.toHead(best)
	return best
}

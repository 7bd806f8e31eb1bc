package domain

import "strconv"

// NumPriorities is the number of claim priority levels a CPU can schedule.
const NumPriorities = 4

// Priority of an unconsumed CPU claim versus other unconsumed CPU claims.
// Higher values are scheduled first.
type Priority int

const (
	MinPriority Priority = 0
	MaxPriority Priority = NumPriorities - 1
)

// MakePriority saturates v into [MinPriority, MaxPriority].
func MakePriority(v int) Priority {
	switch {
	case v < int(MinPriority):
		return MinPriority
	case v > int(MaxPriority):
		return MaxPriority
	}
	return Priority(v)
}

// Set assigns v with the same saturation as MakePriority.
func (p *Priority) Set(v int) {
	*p = MakePriority(v)
}

func (p Priority) String() string {
	return "P" + strconv.Itoa(int(p))
}

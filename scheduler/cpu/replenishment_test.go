package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type credits []string

func (c *credits) credit(s *Share, owed uint) {
	*c = append(*c, fmt.Sprintf("%s:%d", s, owed))
}

func debts(q *replenishmentQueue) []DebtState {
	var ds []DebtState
	q.each(func(s *Share, owed, at uint) {
		ds = append(ds, DebtState{Name: s.name, Owed: owed, At: at})
	})
	return ds
}

func TestReplenishmentQueue_Maturity(t *testing.T) {
	q := newReplenishmentQueue(3)
	s := makeShares("a", "b", "c")
	q.push(s[0], 10, 500)
	q.push(s[1], 20, 500)
	q.push(s[2], 30, 800)
	assert.Equal(t, uint(60), q.owed())
	assert.Equal(t, uint(800), q.total)
	assert.Equal(t, []DebtState{{"a", 10, 500}, {"b", 20, 500}, {"c", 30, 800}}, debts(q))

	var got credits
	assert.Equal(t, 0, q.advance(499, got.credit))
	assert.Equal(t, 2, q.advance(1, got.credit))
	assert.Equal(t, credits{"a:10", "b:20"}, got)
	assert.Equal(t, replenishmentHandle(0), s[0].debt)
	assert.Equal(t, replenishmentHandle(0), s[1].debt)
	assert.Equal(t, uint(300), q.total)

	assert.Equal(t, 1, q.advance(1000, got.credit))
	assert.Equal(t, credits{"a:10", "b:20", "c:30"}, got)
	assert.Equal(t, 0, q.len())
	assert.Equal(t, uint(0), q.total)
}

func TestReplenishmentQueue_Discard(t *testing.T) {
	q := newReplenishmentQueue(3)
	s := makeShares("a", "b", "c")
	q.push(s[0], 10, 500)
	q.push(s[1], 20, 500)
	q.push(s[2], 30, 800)

	assert.True(t, q.discard(s[0]))
	assert.Equal(t, []DebtState{{"b", 20, 500}, {"c", 30, 800}}, debts(q))
	assert.True(t, q.discard(s[2]))
	assert.Equal(t, uint(500), q.total)
	assert.True(t, q.discard(s[1]))
	assert.Equal(t, uint(0), q.total)
	assert.False(t, q.discard(s[1]))
	assert.Equal(t, 0, q.len())
}

func TestReplenishmentQueue_Slots(t *testing.T) {
	q := newReplenishmentQueue(1)
	s := makeShares("a", "b")

	h := q.push(s[0], 10, 100)
	assert.Equal(t, h, s[0].debt)
	assert.Panics(t, func() { q.push(s[0], 10, 100) }, "one record per share")
	assert.Panics(t, func() { q.push(s[1], 10, 100) }, "arena exhausted")

	q.discard(s[0])
	assert.Panics(t, func() { q.get(h) }, "released slot")
	assert.Equal(t, h, q.push(s[1], 5, 100), "released slot is reused")
}

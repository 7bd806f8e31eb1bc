package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeShares(names ...string) []*Share {
	shares := make([]*Share, len(names))
	for i, n := range names {
		shares[i] = NewShare(n, 0, 10)
	}
	return shares
}

func listNames(l *shareList) []string {
	names := []string{}
	l.each(func(s *Share) { names = append(names, s.name) })
	return names
}

func TestShareList_Order(t *testing.T) {
	l := newShareList("test", claimMembership)
	s := makeShares("a", "b", "c")

	l.pushTail(s[0])
	l.pushTail(s[1])
	l.pushHead(s[2])
	assert.Equal(t, []string{"c", "a", "b"}, listNames(l))
	assert.Equal(t, s[2], l.head())

	l.toTail(s[2])
	assert.Equal(t, []string{"a", "b", "c"}, listNames(l))
	l.toHead(s[1])
	assert.Equal(t, []string{"b", "a", "c"}, listNames(l))
	l.headToTail()
	assert.Equal(t, []string{"a", "c", "b"}, listNames(l))

	assert.Equal(t, s[2], l.next(s[0]))
	assert.Nil(t, l.next(s[1]))

	l.remove(s[2])
	assert.Equal(t, []string{"a", "b"}, listNames(l))
	assert.False(t, l.contains(s[2]))
	assert.Equal(t, 2, l.len())
}

func TestShareList_Empty(t *testing.T) {
	l := newShareList("test", fillMembership)
	assert.Nil(t, l.head())
	assert.Equal(t, 0, l.len())
	l.headToTail()
	assert.Equal(t, []string{}, listNames(l))
}

func TestShareList_DualMembership(t *testing.T) {
	claims := newShareList("claims", claimMembership)
	fills := newShareList("fills", fillMembership)
	s := makeShares("a", "b")

	claims.pushTail(s[0])
	fills.pushTail(s[0])
	fills.pushHead(s[1])
	assert.True(t, claims.contains(s[0]))
	assert.True(t, fills.contains(s[0]))

	fills.remove(s[0])
	assert.True(t, claims.contains(s[0]))
	assert.False(t, fills.contains(s[0]))
	assert.Equal(t, []string{"b"}, listNames(fills))
}

func TestShareList_Traps(t *testing.T) {
	ready := newShareList("ready", claimMembership)
	unready := newShareList("unready", claimMembership)
	s := makeShares("a", "b")
	ready.pushTail(s[0])

	assert.Panics(t, func() { unready.pushTail(s[0]) })
	assert.Panics(t, func() { ready.pushHead(s[0]) })
	assert.Panics(t, func() { unready.remove(s[0]) })
	assert.Panics(t, func() { ready.next(s[1]) })
	assert.Panics(t, func() { ready.toHead(s[1]) })
}

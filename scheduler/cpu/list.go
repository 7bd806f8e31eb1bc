package cpu

import (
	"container/list"
)

// membership is the handle a share keeps for the one list of a kind it is
// in. A share has one handle for claim lists and one for the fill list, so
// it can be in a claim list and the fill list at the same time but never in
// two lists of the same kind.
type membership struct {
	elem  *list.Element
	owner *shareList
}

func claimMembership(s *Share) *membership { return &s.claimNode }
func fillMembership(s *Share) *membership  { return &s.fillNode }

// shareList is an ordered list of shares with O(1) insertion at both ends
// and O(1) removal through the share's membership handle.
type shareList struct {
	name   string
	items  list.List
	member func(*Share) *membership
}

func newShareList(name string, member func(*Share) *membership) *shareList {
	return &shareList{name: name, member: member}
}

func (l *shareList) len() int { return l.items.Len() }

func (l *shareList) head() *Share {
	if e := l.items.Front(); e != nil {
		return e.Value.(*Share)
	}
	return nil
}

func (l *shareList) contains(s *Share) bool { return l.member(s).owner == l }

func (l *shareList) pushHead(s *Share) {
	m := l.join(s)
	m.elem = l.items.PushFront(s)
}

func (l *shareList) pushTail(s *Share) {
	m := l.join(s)
	m.elem = l.items.PushBack(s)
}

func (l *shareList) join(s *Share) *membership {
	m := l.member(s)
	if m.owner != nil {
		trap("share %s can not join %s, it is already in %s", s, l.name, m.owner.name)
	}
	m.owner = l
	return m
}

func (l *shareList) remove(s *Share) {
	m := l.own(s)
	l.items.Remove(m.elem)
	m.elem, m.owner = nil, nil
}

func (l *shareList) toHead(s *Share) { l.items.MoveToFront(l.own(s).elem) }
func (l *shareList) toTail(s *Share) { l.items.MoveToBack(l.own(s).elem) }

func (l *shareList) headToTail() {
	if e := l.items.Front(); e != nil {
		l.items.MoveToBack(e)
	}
}

// next returns the successor of s in l, nil at the tail.
func (l *shareList) next(s *Share) *Share {
	if e := l.own(s).elem.Next(); e != nil {
		return e.Value.(*Share)
	}
	return nil
}

func (l *shareList) each(f func(*Share)) {
	for e := l.items.Front(); e != nil; e = e.Next() {
		f(e.Value.(*Share))
	}
}

func (l *shareList) own(s *Share) *membership {
	m := l.member(s)
	if m.owner != l {
		trap("share %s is not in %s", s, l.name)
	}
	return m
}

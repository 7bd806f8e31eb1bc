// Package trace replays scripted scheduler sessions and checks the
// decisions they expect.
//
// A script declares shares and then lists operations, several per line:
//
//	share 1 2 230                # id, priority, quota
//	C(1) A(1) U(0, 0, 1, 230)    # create, ready, update
//
// Operations:
//
//	C(id)          create the share and insert it
//	D(id)          remove the share
//	A(id), I(id)   ready / unready the share
//	O(id), N(id)   ready check, expecting an outdated / current head
//	Q(id, q)       set the quota of the share
//	Y              yield the head
//	U(c, t, h, q)  update with c consumed, then expect the round time t,
//	               head h and head quota q
//
// Id 0 is the idle share. "#" and "/* */" start comments.
package trace

import (
	"fmt"
	"strings"

	"github.com/twitter/quotasched/scheduler/domain"
)

// IdleID names the idle share in scripts.
const IdleID = "0"

type Kind byte

const (
	Create   Kind = 'C'
	Destroy  Kind = 'D'
	Activate Kind = 'A'
	Suspend  Kind = 'I'
	Outdated Kind = 'O'
	Current  Kind = 'N'
	Quota    Kind = 'Q'
	Yield    Kind = 'Y'
	Update   Kind = 'U'
)

var arity = map[Kind]int{
	Create: 1, Destroy: 1, Activate: 1, Suspend: 1, Outdated: 1, Current: 1,
	Quota: 2, Yield: 0, Update: 4,
}

// Op is one operation of a script. Share is the share operated on, or for
// Update the expected head. Args holds the numeric arguments.
type Op struct {
	Kind  Kind
	Share string
	Args  []uint
	Line  int
}

func (o Op) String() string {
	switch o.Kind {
	case Yield:
		return "Y"
	case Quota:
		return fmt.Sprintf("Q(%s, %d)", o.Share, o.Args[0])
	case Update:
		return fmt.Sprintf("U(%d, %d, %s, %d)", o.Args[0], o.Args[1], o.Share, o.Args[2])
	default:
		return fmt.Sprintf("%c(%s)", o.Kind, o.Share)
	}
}

type ShareDef struct {
	ID       string
	Priority domain.Priority
	Quota    uint
}

type Script struct {
	Shares map[string]ShareDef
	Ops    []Op
}

// String renders the script in canonical form, one operation line per
// source line.
func (s *Script) String() string {
	var b strings.Builder
	for _, d := range sortedDefs(s.Shares) {
		fmt.Fprintf(&b, "share %s %d %d\n", d.ID, d.Priority, d.Quota)
	}
	for i, op := range s.Ops {
		if i > 0 {
			if op.Line == s.Ops[i-1].Line {
				b.WriteByte(' ')
			} else {
				b.WriteByte('\n')
			}
		}
		b.WriteString(op.String())
	}
	if len(s.Ops) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

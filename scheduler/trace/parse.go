package trace

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/twitter/quotasched/scheduler/domain"
)

var (
	blockComment = regexp.MustCompile(`/\*.*?\*/`)
	opToken      = regexp.MustCompile(`^([CDAIONQU])\s*\(([^)]*)\)|^(Y)\b`)
)

// Parse reads a script. Errors name the offending line.
func Parse(r io.Reader) (*Script, error) {
	script := &Script{Shares: map[string]ShareDef{}}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := blockComment.ReplaceAllString(scanner.Text(), " ")
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		var err error
		if fields := strings.Fields(text); fields[0] == "share" {
			err = script.declare(fields[1:])
		} else {
			err = script.parseOps(text, line)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	for _, op := range script.Ops {
		if _, ok := script.Shares[op.Share]; !ok && op.Share != IdleID && op.Kind != Yield {
			return nil, errors.Errorf("line %d: share %s is not declared", op.Line, op.Share)
		}
	}
	return script, nil
}

func (s *Script) declare(fields []string) error {
	if len(fields) != 3 {
		return errors.Errorf("share wants <id> <priority> <quota>, got %q", strings.Join(fields, " "))
	}
	id := fields[0]
	if _, err := strconv.ParseUint(id, 10, 0); err != nil {
		return errors.Errorf("share id %q is not a number", id)
	}
	if id == IdleID {
		return errors.New("share 0 is the idle share and can not be declared")
	}
	if _, ok := s.Shares[id]; ok {
		return errors.Errorf("share %s is declared twice", id)
	}
	prio, err := strconv.Atoi(fields[1])
	if err != nil || prio < int(domain.MinPriority) || prio > int(domain.MaxPriority) {
		return errors.Errorf("priority %q of share %s is not in [%d, %d]", fields[1], id, domain.MinPriority, domain.MaxPriority)
	}
	quota, err := strconv.ParseUint(fields[2], 10, 0)
	if err != nil {
		return errors.Wrapf(err, "quota of share %s", id)
	}
	s.Shares[id] = ShareDef{ID: id, Priority: domain.Priority(prio), Quota: uint(quota)}
	return nil
}

func (s *Script) parseOps(text string, line int) error {
	for text != "" {
		m := opToken.FindStringSubmatch(text)
		if m == nil {
			return errors.Errorf("unexpected %q", text)
		}
		text = strings.TrimSpace(text[len(m[0]):])
		if m[3] != "" {
			s.Ops = append(s.Ops, Op{Kind: Yield, Line: line})
			continue
		}
		op, err := parseOp(Kind(m[1][0]), m[2], line)
		if err != nil {
			return err
		}
		s.Ops = append(s.Ops, op)
	}
	return nil
}

func parseOp(kind Kind, args string, line int) (Op, error) {
	fields := strings.Split(args, ",")
	if len(fields) != arity[kind] {
		return Op{}, errors.Errorf("%c takes %d arguments, got %d", kind, arity[kind], len(fields))
	}
	op := Op{Kind: kind, Line: line}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if (kind == Update && i == 2) || (kind != Update && i == 0) {
			if _, err := strconv.ParseUint(f, 10, 0); err != nil {
				return Op{}, errors.Errorf("%c: share id %q is not a number", kind, f)
			}
			op.Share = f
			continue
		}
		v, err := strconv.ParseUint(f, 10, 0)
		if err != nil {
			return Op{}, errors.Wrapf(err, "%c argument %d", kind, i+1)
		}
		op.Args = append(op.Args, uint(v))
	}
	if kind != Update && op.Share == IdleID {
		return Op{}, errors.Errorf("%c can not operate on the idle share", kind)
	}
	return op, nil
}

func sortedDefs(defs map[string]ShareDef) []ShareDef {
	sorted := make([]ShareDef, 0, len(defs))
	for _, d := range defs {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, errA := strconv.Atoi(sorted[i].ID)
		b, errB := strconv.Atoi(sorted[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

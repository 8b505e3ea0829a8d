package purge

import (
	"errors"
	"os"
	"time"

	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/pkg/model"
)

// Outcome of a single kill attempt.
type Outcome int

const (
	Killed Outcome = iota
	AlreadyExited
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Killed:
		return "killed"
	case AlreadyExited:
		return "already exited"
	default:
		return "failed"
	}
}

// Attempt records one kill attempt. Child marks descendants as opposed to
// the candidate's own pid.
type Attempt struct {
	PID     int
	Child   bool
	Outcome Outcome
	Err     error
}

// Summary aggregates a purge run. A target that was already gone counts as
// killed; the race between scan and purge is expected.
type Summary struct {
	Killed int
	Failed int
}

func (s Summary) fold(a Attempt) Summary {
	if a.Outcome == Failed {
		s.Failed++
	} else {
		s.Killed++
	}
	return s
}

const (
	defaultExitWait = 5 * time.Second
	defaultPoll     = 10 * time.Millisecond
	maxPoll         = 250 * time.Millisecond
)

// Terminator kills candidate processes leaf-first. Descendants are walked in
// reverse resolution order, so within a branch every child is attempted
// before its parent, and the candidate's own pid always goes last.
type Terminator struct {
	alive func(pid int) bool
	kill  func(pid int) error
	wait  time.Duration
	poll  time.Duration

	// OnAttempt, when set, observes every attempt as it completes.
	OnAttempt func(Attempt)
}

func NewTerminator(table proc.Table) *Terminator {
	return &Terminator{
		alive: table.Alive,
		kill:  killTree,
		wait:  defaultExitWait,
		poll:  defaultPoll,
	}
}

// Purge terminates every candidate and its recorded descendants, deepest
// first. Failures are folded into the summary, never raised; one stubborn
// process does not stop the rest of the purge. An empty candidate set
// returns a zero summary without touching the process table.
func (t *Terminator) Purge(candidates []model.Candidate) Summary {
	var sum Summary
	for _, c := range candidates {
		for i := len(c.Descendants) - 1; i >= 0; i-- {
			sum = sum.fold(t.attempt(c.Descendants[i], true))
		}
		sum = sum.fold(t.attempt(c.PID, false))
	}
	return sum
}

func (t *Terminator) attempt(pid int, child bool) Attempt {
	a := Attempt{PID: pid, Child: child}
	switch err := t.signal(pid); {
	case err == nil:
		a.Outcome = Killed
	case errors.Is(err, os.ErrProcessDone):
		a.Outcome = AlreadyExited
	default:
		a.Outcome = Failed
		a.Err = err
	}
	if t.OnAttempt != nil {
		t.OnAttempt(a)
	}
	return a
}

func (t *Terminator) signal(pid int) error {
	if !t.alive(pid) {
		return os.ErrProcessDone
	}
	if err := t.kill(pid); err != nil {
		return err
	}
	t.awaitExit(pid)
	return nil
}

// awaitExit polls until the pid disappears or the bounded wait runs out.
// Timing out is not a failure; the kill was delivered and the table will
// catch up on its own.
func (t *Terminator) awaitExit(pid int) {
	deadline := time.Now().Add(t.wait)
	for interval := t.poll; time.Now().Before(deadline); {
		if !t.alive(pid) {
			return
		}
		time.Sleep(interval)
		if interval < maxPoll {
			interval *= 2
		}
	}
}

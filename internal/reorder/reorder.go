// Package reorder implements the drag gesture that moves a folder to a new
// position in the hierarchy.
package reorder

import (
	"context"
	"errors"
	"fmt"
)

// ErrDragInProgress is returned by Start while another drag is active.
var ErrDragInProgress = errors.New("a drag is already in progress")

// State of the controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Mover commits a reorder. The bookmark store implements it.
type Mover interface {
	MoveFolder(ctx context.Context, from, to int) error
}

// NoCandidate is reported by Candidate when no folder is under the cursor.
const NoCandidate = -1

// Controller tracks one drag gesture at a time. The zero value is not
// usable; create it with New.
type Controller struct {
	mover Mover

	state     State
	origin    int
	candidate int
}

// New creates an idle Controller that commits moves through m.
func New(m Mover) *Controller {
	return &Controller{mover: m, origin: NoCandidate, candidate: NoCandidate}
}

// Start begins dragging the folder at origin.
func (c *Controller) Start(origin int) error {
	if c.state == Dragging {
		return ErrDragInProgress
	}
	c.state = Dragging
	c.origin = origin
	c.candidate = NoCandidate
	return nil
}

// Over marks target as the current drop candidate. Ignored when idle.
func (c *Controller) Over(target int) {
	if c.state != Dragging {
		return
	}
	c.candidate = target
}

// Leave clears the candidate if it is target.
func (c *Controller) Leave(target int) {
	if c.state == Dragging && c.candidate == target {
		c.candidate = NoCandidate
	}
}

// Drop ends the gesture on target. When target differs from the origin the
// folder is moved there. Reports whether a move was committed. Ignored when
// idle.
func (c *Controller) Drop(ctx context.Context, target int) (bool, error) {
	if c.state != Dragging {
		return false, nil
	}
	origin := c.origin
	c.reset()

	if origin == target {
		return false, nil
	}
	if err := c.mover.MoveFolder(ctx, origin, target); err != nil {
		return false, fmt.Errorf("move folder %d to %d: %w", origin, target, err)
	}
	return true, nil
}

// Cancel abandons the gesture without moving anything.
func (c *Controller) Cancel() {
	c.reset()
}

// End finishes the gesture outside any folder. Same as Cancel.
func (c *Controller) End() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.origin = NoCandidate
	c.candidate = NoCandidate
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Dragging reports whether a gesture is active.
func (c *Controller) Dragging() bool { return c.state == Dragging }

// Origin returns the index being dragged, or NoCandidate when idle.
func (c *Controller) Origin() int { return c.origin }

// Candidate returns the highlighted drop target, or NoCandidate.
func (c *Controller) Candidate() int { return c.candidate }

package session

import (
	"errors"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// State is a stage of one generation session.
type State int

const (
	Idle State = iota
	Detecting
	Ready
	Presenting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Detecting:
		return "detecting"
	case Ready:
		return "ready"
	case Presenting:
		return "presenting"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy rejects a submit while another generation is in flight.
	ErrBusy = errors.New("session: a blueprint is already being generated")
	// ErrNotReady rejects complete when no blueprint is available yet.
	ErrNotReady = errors.New("session: no blueprint is ready")
	// ErrInvalidTransition rejects an event the current state does not accept.
	ErrInvalidTransition = errors.New("session: invalid transition")
)

// Snapshot is a consistent read of the machine for renderers.
type Snapshot struct {
	State        State
	Idea         string
	LastIdea     string
	DetectedType domain.ProjectType
	Progress     int
	Blueprint    *domain.Blueprint
}

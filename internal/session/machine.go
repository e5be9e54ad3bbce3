package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/internal/blueprint/analysis"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/history"
)

// DefaultTimeout bounds one Detecting call.
const DefaultTimeout = 45 * time.Second

// Analyzer produces a validated blueprint candidate for an idea.
type Analyzer interface {
	Analyze(ctx context.Context, idea string) (*domain.Blueprint, error)
}

// Machine drives one generation session: Idle, Detecting, Ready, Presenting.
// All methods are safe for concurrent use; at most one analysis runs at a time.
type Machine struct {
	analyzer Analyzer
	history  history.Store
	notifier Notifier
	timeout  time.Duration
	newID    func() string
	log      *zap.Logger

	mu       sync.Mutex
	state    State
	idea     string
	lastIdea string
	detected domain.ProjectType
	progress int
	bp       *domain.Blueprint
}

type Option func(*Machine)

func WithTimeout(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithIDGenerator replaces the UUID v4 generator used to stamp blueprints.
func WithIDGenerator(f func() string) Option {
	return func(m *Machine) { m.newID = f }
}

func NewMachine(analyzer Analyzer, store history.Store, opts ...Option) *Machine {
	m := &Machine{
		analyzer: analyzer,
		history:  store,
		notifier: NotifierFunc(func(Notification) {}),
		timeout:  DefaultTimeout,
		newID:    uuid.NewString,
		log:      zap.NewNop(),
		state:    Idle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Submit runs Idle -> Detecting -> Ready, or back to Idle on failure. It
// blocks until the analysis finishes or the timeout elapses and returns the
// classified failure, if any. The user has already been notified.
func (m *Machine) Submit(ctx context.Context, idea string) (*domain.Blueprint, error) {
	m.mu.Lock()
	switch m.state {
	case Idle:
	case Detecting:
		m.mu.Unlock()
		m.notifier.Notify(Notification{Level: LevelWarn, Title: "Busy", Message: "A blueprint is already being generated. Please wait."})
		return nil, ErrBusy
	default:
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	trimmed, err := analysis.ValidateIdea(idea)
	if err != nil {
		m.mu.Unlock()
		m.notifier.Notify(Notification{Level: LevelWarn, Title: "Invalid idea", Message: domain.UserMessage(err), Kind: domain.KindInvalidInput})
		return nil, err
	}

	m.state = Detecting
	m.idea = trimmed
	m.lastIdea = trimmed
	m.detected = ""
	m.progress = 0
	m.bp = nil
	m.mu.Unlock()

	bp, err := m.analyze(ctx, trimmed)
	if err != nil {
		m.mu.Lock()
		m.state = Idle
		m.idea = ""
		m.progress = 0
		m.mu.Unlock()

		m.log.Warn("generation failed", zap.String("kind", string(domain.KindOf(err))), zap.Error(err))
		m.notifier.Notify(failureNotification(err))
		return nil, err
	}

	bp.ID = m.newID()

	m.mu.Lock()
	m.detected = bp.ProjectType
	m.progress = 90
	m.mu.Unlock()

	if _, err := m.history.Save(ctx, bp); err != nil {
		m.log.Warn("blueprint not persisted", zap.String("id", bp.ID), zap.Error(err))
	}

	m.mu.Lock()
	m.progress = 100
	m.bp = bp
	m.state = Ready
	m.mu.Unlock()
	return bp, nil
}

// analyze runs the analyzer under the session timeout. A call that outlives
// the deadline is reported as ServiceUnavailable even if the analyzer ignores
// cancellation.
func (m *Machine) analyze(ctx context.Context, idea string) (*domain.Blueprint, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	type result struct {
		bp  *domain.Blueprint
		err error
	}
	done := make(chan result, 1)
	go func() {
		bp, err := m.analyzer.Analyze(ctx, idea)
		done <- result{bp, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if ctx.Err() != nil && !isClassified(r.err) {
				return nil, timeoutError(ctx.Err())
			}
			return nil, r.err
		}
		if r.bp == nil {
			return nil, domain.NewError(domain.KindIncompleteBlueprint, errors.New("analyzer returned no blueprint"))
		}
		return r.bp, nil
	case <-ctx.Done():
		return nil, timeoutError(ctx.Err())
	}
}

func isClassified(err error) bool {
	var e *domain.Error
	return errors.As(err, &e)
}

func timeoutError(cause error) error {
	return domain.Errorf(domain.KindServiceUnavailable, "The AI service took too long to respond. Please try again.", cause)
}

// Complete moves Ready -> Presenting once the detection display has settled.
// It does nothing and returns ErrNotReady unless a blueprint is present.
func (m *Machine) Complete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Ready || m.bp == nil {
		return ErrNotReady
	}
	m.state = Presenting
	return nil
}

// Back leaves the dashboard and discards all transient state. History is
// not touched.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Presenting {
		return ErrInvalidTransition
	}
	m.state = Idle
	m.idea = ""
	m.lastIdea = ""
	m.detected = ""
	m.progress = 0
	m.bp = nil
	return nil
}

// SelectRecent presents a history item directly from Idle.
func (m *Machine) SelectRecent(item history.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Idle {
		return ErrInvalidTransition
	}
	bp := item.Blueprint
	m.bp = &bp
	m.detected = bp.ProjectType
	m.state = Presenting
	return nil
}

// LastIdea is the idea of the most recent submit, kept after a failure so the
// input can be prefilled.
func (m *Machine) LastIdea() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastIdea
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:        m.state,
		Idea:         m.idea,
		LastIdea:     m.lastIdea,
		DetectedType: m.detected,
		Progress:     m.progress,
		Blueprint:    m.bp,
	}
}

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

const (
	DefaultKey      = "aura_blueprint_history"
	DefaultCapacity = 5
)

// Item is one entry of the recent blueprints list.
type Item struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ProjectType domain.ProjectType `json:"projectType"`
	CreatedAt   time.Time          `json:"createdAt"`
	Blueprint   domain.Blueprint   `json:"blueprint"`
}

// Store is the bounded, most-recent-first cache of generated blueprints.
type Store interface {
	Load(ctx context.Context) error
	Save(ctx context.Context, bp *domain.Blueprint) (Item, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	List() []Item
	Get(id string) (Item, bool)
}

// History implements Store over a Backend. The in-memory list is
// authoritative for the session; backend failures are reported as
// PersistenceDegraded and never roll the list back.
type History struct {
	mu       sync.Mutex
	backend  Backend
	key      string
	capacity int
	now      func() time.Time
	log      *zap.Logger
	items    []Item
}

type Option func(*History)

func WithKey(key string) Option {
	return func(h *History) {
		if key != "" {
			h.key = key
		}
	}
}

func WithCapacity(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.capacity = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(h *History) { h.log = l }
}

func New(backend Backend, opts ...Option) *History {
	h := &History{
		backend:  backend,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		now:      time.Now,
		log:      zap.NewNop(),
		items:    []Item{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ Store = (*History)(nil)

// Load replaces the in-memory list with the persisted one. A missing key is an
// empty history; unreadable or corrupt data also yields an empty history and
// a PersistenceDegraded error.
func (h *History) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = []Item{}
	data, err := h.backend.Read(ctx, h.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return h.degraded("load", err)
	}

	var stored []Item
	if err := json.Unmarshal(data, &stored); err != nil {
		return h.degraded("load", fmt.Errorf("decode history: %w", err))
	}

	seen := make(map[string]bool, len(stored))
	for _, it := range stored {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		it.Blueprint.Normalize()
		h.items = append(h.items, it)
		if len(h.items) == h.capacity {
			break
		}
	}
	return nil
}

// Save upserts bp at the front of the list with a fresh timestamp and evicts
// beyond capacity. bp must carry an id.
func (h *History) Save(ctx context.Context, bp *domain.Blueprint) (Item, error) {
	if bp == nil || bp.ID == "" {
		return Item{}, domain.Errorf(domain.KindInvalidInput, "Blueprint has no id", nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	item := Item{
		ID:          bp.ID,
		Title:       bp.Title,
		ProjectType: bp.ProjectType,
		CreatedAt:   h.now().UTC(),
		Blueprint:   *bp,
	}

	next := make([]Item, 0, h.capacity)
	next = append(next, item)
	for _, it := range h.items {
		if it.ID == item.ID {
			continue
		}
		if len(next) == h.capacity {
			break
		}
		next = append(next, it)
	}
	h.items = next

	return item, h.persist(ctx, "save")
}

// Remove drops the item with id. Absent ids are a no-op.
func (h *History) Remove(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := -1
	for i, it := range h.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]Item, 0, len(h.items)-1)
	next = append(next, h.items[:idx]...)
	h.items = append(next, h.items[idx+1:]...)
	return h.persist(ctx, "remove")
}

// Clear empties the history and deletes the persisted key.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = []Item{}
	if err := h.backend.Delete(ctx, h.key); err != nil {
		return h.degraded("clear", err)
	}
	return nil
}

// List returns a copy of the items, most recently saved first.
func (h *History) List() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Item{}, h.items...)
}

func (h *History) Get(id string) (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, it := range h.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// persist writes the current list. Callers hold h.mu.
func (h *History) persist(ctx context.Context, op string) error {
	data, err := json.Marshal(h.items)
	if err != nil {
		return h.degraded(op, fmt.Errorf("encode history: %w", err))
	}
	if err := h.backend.Write(ctx, h.key, data); err != nil {
		return h.degraded(op, err)
	}
	return nil
}

func (h *History) degraded(op string, err error) error {
	h.log.Warn("history persistence degraded",
		zap.String("operation", op),
		zap.String("kind", string(domain.KindPersistenceDegraded)),
		zap.Error(err),
	)
	return domain.NewError(domain.KindPersistenceDegraded, err)
}

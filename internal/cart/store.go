package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/packfinderz-cart/pkg/errors"
	"github.com/angelmondragon/packfinderz-cart/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
	"github.com/angelmondragon/packfinderz-cart/pkg/metrics"
)

const (
	DefaultStorageKey = "products"

	opInitialize = "initialize"
)

// Op names a cart mutation.
type Op string

const (
	OpAdd       Op = "add"
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
)

// Cart is the surface consumers of the cart store depend on.
type Cart interface {
	Products() []Item
	AddToCart(ctx context.Context, input AddItemInput) error
	Increment(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string) error
	// Apply runs a mutation and returns the items it committed. Increment and
	// decrement only read input.ID.
	Apply(ctx context.Context, op Op, input AddItemInput) ([]Item, error)
}

// Options tunes a Store.
type Options struct {
	// Key is the canonical storage key for the snapshot.
	Key string
	// InsertOnAdd makes AddToCart insert unknown products with quantity 1
	// instead of ignoring them.
	InsertOnAdd bool
	// Timeout bounds each storage call. Zero means no bound beyond the caller's context.
	Timeout time.Duration
}

// Store owns the cart line items and mirrors every change to storage.
//
// Mutations are serialized by writeMu and include the storage write, so a
// mutation always starts from the state left by the previous one. Readers only
// take mu and never wait on storage.
//
// Nothing is written until the stored snapshot has been read, so a failed read
// can never be followed by a write that replaces the unread cart.
type Store struct {
	storage kvstore.Store
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	opts    Options

	writeMu sync.Mutex
	// guarded by writeMu
	loaded   bool
	initDone bool
	initErr  error

	mu       sync.RWMutex
	items    []Item
	degraded bool
}

var _ Cart = (*Store)(nil)

// NewStore builds an empty store; call Initialize to rehydrate it.
func NewStore(storage kvstore.Store, logg *logger.Logger, m *metrics.CartMetrics, opts Options) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	opts.Key = strings.TrimSpace(opts.Key)
	if opts.Key == "" {
		opts.Key = DefaultStorageKey
	}
	return &Store{
		storage: storage,
		logg:    logg,
		metrics: m,
		opts:    opts,
		items:   []Item{},
	}, nil
}

// Initialize replaces the in-memory state with the persisted snapshot. It runs
// once per store; later calls return the first result. A missing or malformed
// snapshot leaves the cart empty and returns nil. A read failure leaves the
// cart empty, switches the store to in-memory-only mode and is returned.
// A call that failed because ctx was done is not remembered.
func (s *Store) Initialize(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.initDone {
		return s.initErr
	}
	err := s.ensureLoaded(ctx)
	if err != nil && ctx.Err() != nil {
		return err
	}
	s.initDone = true
	s.initErr = err
	return err
}

// ensureLoaded reads the snapshot unless a previous read succeeded. Callers
// hold writeMu.
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if err := s.load(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *Store) load(ctx context.Context) error {
	ctx = s.logg.WithFields(ctx, map[string]any{"op": opInitialize, "storage_key": s.opts.Key})

	raw, ok, err := s.get(ctx)
	if err != nil {
		s.metrics.IncStorageFailure("read")
		s.setDegraded(true)
		wrapped := pkgerrors.Wrap(pkgerrors.CodeStorageRead, err, "read cart snapshot")
		s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Dump(wrapped).Fields()), "cart.snapshot.read_failed", wrapped)
		return wrapped
	}
	if s.setDegraded(false) {
		s.logg.Info(ctx, "cart.storage.recovered")
	}
	if !ok {
		s.logg.Info(ctx, "cart.snapshot.absent")
		return nil
	}

	items, repaired, err := decodeSnapshot(raw)
	if err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "cart.snapshot.malformed")
		return nil
	}
	if repaired > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "repaired_lines", repaired), "cart.snapshot.repaired")
	}

	s.mu.Lock()
	replaced := len(s.items)
	s.items = items
	s.mu.Unlock()

	if replaced > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "discarded_lines", replaced), "cart.memory.replaced")
	}
	s.logg.Info(s.logg.WithField(ctx, "lines", len(items)), "cart.snapshot.loaded")
	return nil
}

// Products returns a copy of the current line items.
func (s *Store) Products() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Degraded reports whether the last storage call failed and the store is
// running from memory only.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// AddToCart increments an existing product. Unknown products are ignored
// unless Options.InsertOnAdd is set, in which case they are appended with
// quantity 1.
func (s *Store) AddToCart(ctx context.Context, input AddItemInput) error {
	_, err := s.Apply(ctx, OpAdd, input)
	return err
}

// Increment raises the quantity of an existing product by one.
func (s *Store) Increment(ctx context.Context, id string) error {
	_, err := s.Apply(ctx, OpIncrement, AddItemInput{ID: id})
	return err
}

// Decrement lowers the quantity of an existing product by one, flooring at
// zero. Lines are never removed.
func (s *Store) Decrement(ctx context.Context, id string) error {
	_, err := s.Apply(ctx, OpDecrement, AddItemInput{ID: id})
	return err
}

// Apply runs op and returns a copy of the items it committed, including when
// the write failed with CodeStorageWrite and the change lives in memory only.
func (s *Store) Apply(ctx context.Context, op Op, input AddItemInput) ([]Item, error) {
	var apply func([]Item) ([]Item, bool)
	switch op {
	case OpAdd:
		if strings.TrimSpace(input.ID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
		}
		apply = s.addLine(input)
	case OpIncrement:
		apply = incrementLine(input.ID)
	case OpDecrement:
		apply = decrementLine(input.ID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart operation %q", op))
	}
	return s.mutate(ctx, string(op), input.ID, apply)
}

func (s *Store) addLine(input AddItemInput) func([]Item) ([]Item, bool) {
	return func(items []Item) ([]Item, bool) {
		if idx := indexOf(items, input.ID); idx >= 0 {
			items[idx].Quantity = Qty(items[idx].QuantityOrZero() + 1)
			return items, true
		}
		if !s.opts.InsertOnAdd {
			return items, false
		}
		return append(items, Item{
			ID:       input.ID,
			Title:    input.Title,
			ImageURL: input.ImageURL,
			Price:    input.Price,
			Quantity: Qty(1),
		}), true
	}
}

func incrementLine(id string) func([]Item) ([]Item, bool) {
	return func(items []Item) ([]Item, bool) {
		idx := indexOf(items, id)
		if idx < 0 {
			return items, false
		}
		items[idx].Quantity = Qty(items[idx].QuantityOrZero() + 1)
		return items, true
	}
}

func decrementLine(id string) func([]Item) ([]Item, bool) {
	return func(items []Item) ([]Item, bool) {
		idx := indexOf(items, id)
		if idx < 0 {
			return items, false
		}
		next := items[idx].QuantityOrZero() - 1
		if next < 0 {
			next = 0
		}
		items[idx].Quantity = Qty(next)
		return items, true
	}
}

func (s *Store) mutate(ctx context.Context, op, id string, apply func([]Item) ([]Item, bool)) ([]Item, error) {
	ctx = s.logg.WithFields(ctx, map[string]any{"op": op, "item_id": id, "storage_key": s.opts.Key})

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// an unread snapshot is retried first; until it succeeds, changes stay in memory
	loadErr := s.ensureLoaded(ctx)

	next, changed := apply(s.Products())
	if !changed {
		s.metrics.IncMutation(op, metrics.OutcomeNoop)
		s.logg.Debug(ctx, "cart.mutation.noop")
		return next, nil
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()

	if loadErr != nil {
		s.metrics.IncMutation(op, metrics.OutcomeDegraded)
		s.logg.Warn(ctx, "cart.snapshot.write_skipped")
		return cloneItems(next), pkgerrors.Wrap(pkgerrors.CodeStorageWrite, loadErr, "stored cart not loaded; change kept in memory")
	}

	if err := s.persist(ctx, next); err != nil {
		s.metrics.IncMutation(op, metrics.OutcomeDegraded)
		return cloneItems(next), err
	}
	s.metrics.IncMutation(op, metrics.OutcomeChanged)
	return cloneItems(next), nil
}

// persist writes the complete snapshot that was just committed to memory.
func (s *Store) persist(ctx context.Context, items []Item) error {
	payload, err := encodeSnapshot(items)
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
		s.logg.Error(ctx, "cart.snapshot.encode_failed", wrapped)
		return wrapped
	}

	start := time.Now()
	err = s.set(ctx, payload)
	s.metrics.ObservePersist(time.Since(start))
	if err != nil {
		s.metrics.IncStorageFailure("write")
		s.setDegraded(true)
		wrapped := pkgerrors.Wrap(pkgerrors.CodeStorageWrite, err, "persist cart snapshot")
		s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Dump(wrapped).Fields()), "cart.snapshot.write_failed", wrapped)
		return wrapped
	}

	if s.setDegraded(false) {
		s.logg.Info(ctx, "cart.storage.recovered")
	}
	return nil
}

func (s *Store) get(ctx context.Context) (string, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.storage.Get(ctx, s.opts.Key)
}

func (s *Store) set(ctx context.Context, payload string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.storage.Set(ctx, s.opts.Key, payload)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opts.Timeout)
}

// setDegraded updates the flag and reports whether it changed.
func (s *Store) setDegraded(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.degraded != v
	s.degraded = v
	return changed
}

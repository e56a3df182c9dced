package runtime

import (
	"context"
	"sync"
	"time"

	"okinoko-arcade/contract"
	"okinoko-arcade/sdk"

	"github.com/dgraph-io/badger/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("runtime closed")

// Receipt is the committed outcome of one call.
type Receipt struct {
	TxID   string
	Method string
	Sender sdk.Address
	Result string
	Events []sdk.Event
}

// Runtime executes contract calls one at a time, each inside a single badger
// transaction. A call either commits all of its state writes and ledger
// moves or none of them.
type Runtime struct {
	mu      sync.Mutex
	db      *badger.DB
	log     *zap.Logger
	metrics *Metrics
	now     func() time.Time
	closed  bool
}

type options struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
	clock      func() time.Time
}

// Option customizes Open.
type Option func(*options)

// WithLogger replaces the logger built from Config.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithRegisterer registers metrics somewhere other than the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithClock overrides the source of block timestamps.
func WithClock(now func() time.Time) Option { return func(o *options) { o.clock = now } }

// Open validates cfg and opens the store.
func Open(cfg *Config, opts ...Option) (*Runtime, error) {
	if err := cfg.ValidateBasic(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	o := options{registerer: prometheus.DefaultRegisterer, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l, err := NewLogger(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "build logger")
		}
		o.logger = l
	}

	dir := cfg.DataDir
	if cfg.InMemory {
		dir = ""
	}
	bopts := badger.DefaultOptions(dir).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(newBadgerLogger(o.logger))
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store %q", dir)
	}

	m := newMetrics(cfg.MetricsNamespace)
	if err := m.register(o.registerer); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "register metrics")
	}

	o.logger.Info("runtime opened",
		zap.String("data_dir", dir),
		zap.Bool("in_memory", cfg.InMemory),
	)
	return &Runtime{db: db, log: o.logger, metrics: m, now: o.clock}, nil
}

// Close flushes and closes the store. Further calls fail with ErrClosed.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}

// Metrics exposes the runtime's collectors.
func (r *Runtime) Metrics() *Metrics { return r.metrics }

// Call dispatches method with payload on behalf of sender. Read-only entry
// points are served from a read transaction.
func (r *Runtime) Call(ctx context.Context, sender sdk.Address, method, payload string) (*Receipt, error) {
	entry, err := contract.Lookup(method)
	if err != nil {
		r.metrics.Calls.WithLabelValues("unknown", contract.CodeOf(err)).Inc()
		return nil, err
	}
	return r.run(ctx, sender, entry, payload)
}

// Query runs a read-only entry point. Mutating methods are refused.
func (r *Runtime) Query(ctx context.Context, method, payload string) (string, error) {
	entry, err := contract.Lookup(method)
	if err != nil {
		return "", err
	}
	if !entry.ReadOnly {
		return "", errors.Wrapf(sdk.ErrReadOnly, "%s is not a query", method)
	}
	rc, err := r.run(ctx, sdk.Address{}, entry, payload)
	if err != nil {
		return "", err
	}
	return rc.Result, nil
}

// Execute runs fn as a call from sender, for callers that use the typed
// contract API instead of payload strings.
func (r *Runtime) Execute(ctx context.Context, sender sdk.Address, name string, fn func(sdk.Chain) error) (*Receipt, error) {
	entry := contract.Entry{Name: name, Handler: func(chain sdk.Chain, _ string) (string, error) {
		return "", fn(chain)
	}}
	return r.run(ctx, sender, entry, "")
}

func (r *Runtime) run(ctx context.Context, sender sdk.Address, entry contract.Entry, payload string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	env := sdk.Env{
		Sender:    sender,
		TxID:      uuid.NewString(),
		Timestamp: r.now().Unix(),
	}
	var (
		chain  *txnChain
		result string
	)
	fn := func(txn *badger.Txn) error {
		chain = &txnChain{txn: txn, env: env, readOnly: entry.ReadOnly}
		var err error
		result, err = entry.Handler(chain, payload)
		return err
	}
	var err error
	if entry.ReadOnly {
		err = r.db.View(fn)
	} else {
		err = r.db.Update(fn)
	}
	elapsed := time.Since(start)
	r.metrics.Duration.WithLabelValues(entry.Name).Observe(elapsed.Seconds())

	log := r.log.With(
		zap.String("method", entry.Name),
		zap.String("tx", env.TxID),
		zap.Stringer("sender", sender),
		zap.Duration("duration", elapsed),
	)
	if err != nil {
		code := contract.CodeOf(err)
		if code == "" {
			code = "error"
			log.Error("call failed", zap.Error(err))
		} else {
			log.Debug("call rejected", zap.String("code", code), zap.Error(err))
		}
		r.metrics.Calls.WithLabelValues(entry.Name, code).Inc()
		return nil, err
	}

	r.metrics.Calls.WithLabelValues(entry.Name, "ok").Inc()
	r.metrics.observeCommit(chain)
	for _, ev := range chain.events {
		log.Info("event", zap.String("type", ev.Type), zap.Any("attributes", ev.Attributes))
	}
	log.Debug("call committed")
	return &Receipt{
		TxID:   env.TxID,
		Method: entry.Name,
		Sender: sender,
		Result: result,
		Events: chain.events,
	}, nil
}

// Mint credits amount to addr outside any game. Funds entering the ledger
// are not the engine's concern; this seeds genesis balances and tests.
func (r *Runtime) Mint(addr sdk.Address, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return addBalance(txn, addr, amount)
	})
	if err != nil {
		return err
	}
	r.log.Info("minted", zap.Stringer("account", addr), zap.Uint64("amount", amount))
	return nil
}

// Balance reads a ledger account. Game addresses report their custody.
func (r *Runtime) Balance(addr sdk.Address) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}
	var bal uint64
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		bal, err = getBalance(txn, addr)
		return err
	})
	return bal, err
}

// Snapshot returns a copy of every stored key and value. Tests use it to
// prove that rejected calls leave the store untouched.
func (r *Runtime) Snapshot() (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	out := make(map[string][]byte)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out[string(item.KeyCopy(nil))] = v
		}
		return nil
	})
	return out, err
}

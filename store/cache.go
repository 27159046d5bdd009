package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no record exists for a key.
	ErrNotFound = errors.New("store: not found")
	// ErrNoDir is returned when an on-disk cache is opened without a directory.
	ErrNoDir = errors.New("store: Options.Dir is required for on-disk mode")
)

const keyPrefix = "solve:"

// Options configures Open.
type Options struct {
	// Dir is the BadgerDB data directory. Required unless InMemory.
	Dir string
	// InMemory keeps everything in memory; nothing is persisted.
	InMemory bool
	// TTL, if > 0, expires records after this long.
	TTL time.Duration
	// Logger receives badger's internal messages. Nil discards them.
	Logger *slog.Logger
}

// Entry is a key and its record, as yielded by List.
type Entry struct {
	Key    string
	Record Record
}

// Cache is a BadgerDB-backed store of solve results. It is safe for
// concurrent use.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates a cache.
func Open(opts Options) (*Cache, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, ErrNoDir
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(badgerLogger{opts.Logger})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", opts.Dir, err)
	}
	return &Cache{db: db, ttl: opts.TTL, now: time.Now}, nil
}

func encodeKey(key string) []byte { return []byte(keyPrefix + key) }

// Get returns the record stored under key, or ErrNotFound.
func (c *Cache) Get(_ context.Context, key string) (Record, error) {
	var rec Record
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: get %s: %w", key, err)
	}
	return rec, nil
}

// Put stores rec under key, replacing any previous record.
func (c *Cache) Put(_ context.Context, key string, rec Record) error {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(encodeKey(key), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(encodeKey(key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// List iterates over every record in key order.
func (c *Cache) List(_ context.Context) iter.Seq2[Entry, error] {
	prefix := []byte(keyPrefix)
	return func(yield func(Entry, error) bool) {
		err := c.db.View(func(txn *badger.Txn) error {
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.Prefix = prefix
			it := txn.NewIterator(iterOpts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				item := it.Item()
				key := strings.TrimPrefix(string(item.KeyCopy(nil)), keyPrefix)
				var rec Record
				err := item.Value(func(val []byte) error {
					return msgpack.Unmarshal(val, &rec)
				})
				if !yield(Entry{Key: key, Record: rec}, err) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, err)
		}
	}
}

// Clear removes every record and returns how many were deleted.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	var keys []string
	for e, err := range c.List(ctx) {
		if err != nil {
			return 0, err
		}
		keys = append(keys, e.Key)
	}
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(encodeKey(k)); err != nil {
			return 0, err
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Solve returns the cached result for m when present, otherwise runs
// solver.Solve and stores its outcome. hit reports whether the cache
// answered. Solver errors are never cached. A hit that needed more
// expansions than WithMaxSteps allows fails with solver.ErrStepBudget.
func (c *Cache) Solve(ctx context.Context, m *maze.Maze, opts ...solver.Option) (res *solver.Result, hit bool, err error) {
	if m == nil {
		return nil, false, solver.ErrNilMaze
	}
	key := KeyFor(m)
	rec, err := c.Get(ctx, key)
	switch {
	case err == nil:
		// A fresh solve under the same budget would have failed.
		o := solver.DefaultOptions()
		for _, opt := range opts {
			opt(&o)
		}
		if o.MaxSteps > 0 && rec.Explored > o.MaxSteps {
			return nil, false, fmt.Errorf("%w: %d nodes needed, budget is %d",
				solver.ErrStepBudget, rec.Explored, o.MaxSteps)
		}
		res = rec.Result()
		res.Start = m.Start()
		return res, true, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}

	res, err = solver.Solve(m, append([]solver.Option{solver.WithContext(ctx)}, opts...)...)
	if err != nil {
		return nil, false, err
	}
	if err := c.Put(ctx, key, NewRecord(m, res, c.now())); err != nil {
		return nil, false, err
	}
	return res, false, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// badgerLogger forwards badger's printf-style logging to slog.
type badgerLogger struct{ l *slog.Logger }

func (b badgerLogger) log(level slog.Level, format string, args ...any) {
	if b.l == nil {
		return
	}
	b.l.Log(context.Background(), level, strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (b badgerLogger) Errorf(f string, a ...any)   { b.log(slog.LevelError, f, a...) }
func (b badgerLogger) Warningf(f string, a ...any) { b.log(slog.LevelWarn, f, a...) }
func (b badgerLogger) Infof(f string, a ...any)    { b.log(slog.LevelDebug, f, a...) }
func (b badgerLogger) Debugf(f string, a ...any)   { b.log(slog.LevelDebug, f, a...) }

package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/users"
)

// userSource is the bulk lookup the loader batches over.
type userSource interface {
	FindByIDs(ctx context.Context, ids []int, fields []string) (map[int]*users.User, error)
}

// UserLoader coalesces the fk_user lookups of a single resolver wave into
// one bulk query. Load only registers the key and returns a thunk; the
// GraphQL executor calls thunks after the synchronous wave has finished, so
// by the time the first thunk runs the batch holds every key the wave asked
// for. A loader lives for exactly one request.
type UserLoader struct {
	source userSource

	mu      sync.Mutex
	pending *userBatch
}

// NewUserLoader creates a loader over the given bulk source.
func NewUserLoader(source userSource) *UserLoader {
	return &UserLoader{source: source}
}

// userBatch accumulates keys and requested fields until its first thunk
// fires, then executes exactly once.
type userBatch struct {
	once sync.Once

	keys      []int
	seenKeys  map[int]bool
	fields    []string
	seenField map[string]bool

	results map[int]*users.User
	err     error
}

// Load registers a key plus the caller's field projection in the open batch
// and returns a thunk producing that key's user. Duplicate keys share one
// row; projections are unioned so every caller finds its columns populated.
func (l *UserLoader) Load(ctx context.Context, key int, fields []string) func() (interface{}, error) {
	l.mu.Lock()
	if l.pending == nil {
		l.pending = &userBatch{
			seenKeys:  make(map[int]bool),
			seenField: make(map[string]bool),
		}
	}
	batch := l.pending

	if !batch.seenKeys[key] {
		batch.seenKeys[key] = true
		batch.keys = append(batch.keys, key)
	}
	for _, f := range fields {
		if !batch.seenField[f] {
			batch.seenField[f] = true
			batch.fields = append(batch.fields, f)
		}
	}
	l.mu.Unlock()

	return func() (interface{}, error) {
		batch.once.Do(func() {
			// Detach so anything loaded after this point starts a new batch.
			l.mu.Lock()
			if l.pending == batch {
				l.pending = nil
			}
			l.mu.Unlock()

			batch.results, batch.err = l.source.FindByIDs(ctx, batch.keys, batch.fields)
		})
		if batch.err != nil {
			return nil, batch.err
		}
		user, ok := batch.results[key]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found", key), nil)
		}
		return user, nil
	}
}

type loaderContextKey struct{}

// NewContextWithLoader attaches a per-request loader to the context.
func NewContextWithLoader(ctx context.Context, loader *UserLoader) context.Context {
	return context.WithValue(ctx, loaderContextKey{}, loader)
}

// LoaderFromContext extracts the request's loader, or nil if none was set.
func LoaderFromContext(ctx context.Context) *UserLoader {
	loader, _ := ctx.Value(loaderContextKey{}).(*UserLoader)
	return loader
}

// Package usecase contains the application use cases.
package usecase

import (
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// Board hosts the consistency engine for a process. Every operation runs under
// one exclusive lock, reads included, because reads record views in history.
// After a successful mutation the whole dataset is saved to the store.
// Fields are ordered to minimize memory padding.
type Board struct {
	store  domain.DatasetStore
	logger domain.Logger
	engine *engine.Engine
	mu     sync.Mutex
}

// NewBoard loads the dataset from store and builds the engine.
// A nil store yields an empty, in-memory board.
func NewBoard(store domain.DatasetStore, logger domain.Logger, opts ...engine.Option) (*Board, error) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	var data *domain.Dataset
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			if errors.Is(err, domain.ErrNotInitialized) {
				return nil, err
			}
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		data = loaded
	}

	eng := engine.Restore(data, opts...)
	if data != nil {
		if dropped := data.Len() - len(eng.Items()); dropped > 0 {
			logger.Warn(0, "store", fmt.Sprintf("dropped %d subtask(s) with missing epic", dropped))
		}
	}
	return &Board{store: store, logger: logger, engine: eng}, nil
}

// view runs fn with exclusive access to the engine.
func (b *Board) view(fn func(e *engine.Engine)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.engine)
}

// mutate runs fn with exclusive access to the engine and saves the dataset
// if fn reports success.
func (b *Board) mutate(fn func(e *engine.Engine) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := fn(b.engine); err != nil {
		return err
	}
	if b.store == nil {
		return nil
	}
	if err := b.store.Save(b.engine.Export()); err != nil {
		b.logger.Error(0, "store", fmt.Sprintf("save failed: %v", err))
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

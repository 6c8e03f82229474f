/*
Package session keeps labeled datasets between invocations so that they can
be generated or entered once and analyzed any number of times later.
*/
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ckacy01/entropia/dataset"
)

/*
Store is an interface to manage a store
where datasets can be created, retrieved, updated
and deleted under a session id.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Create takes a labeled dataset and stores it
	// for the first time in the store, returning the
	// id generated for it or an error if it cannot be
	// stored.
	Create(ctx context.Context, l *dataset.Labeled) (string, error)
	// Get takes an id and returns the dataset in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id string) (*dataset.Labeled, error)
	// Put takes an id and a dataset and stores the
	// dataset under the id, replacing any dataset
	// already stored with it. It returns an error if
	// the dataset cannot be stored.
	Put(ctx context.Context, id string, l *dataset.Labeled) error
	// Delete takes an id and deletes the dataset
	// stored with it, if any. It returns an error
	// if the deletion cannot be performed.
	Delete(ctx context.Context, id string) error
	// Close closes the store, freeing any resources
	// in use. It returns an error if the Close cannot
	// be completed.
	Close(ctx context.Context) error
}

type memoryStore struct {
	datasets map[string]*dataset.Labeled
	lock     *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		datasets: make(map[string]*dataset.Labeled),
		lock:     &sync.RWMutex{},
	}
}

func (ms *memoryStore) Create(ctx context.Context, l *dataset.Labeled) (string, error) {
	if l == nil {
		return "", fmt.Errorf("creating session: nil dataset")
	}
	var id string
	err := ms.withLock(ctx, func(ctx context.Context) error {
		taken := true
		for taken {
			if err := ctx.Err(); err != nil {
				return err
			}
			id = NewID()
			_, taken = ms.datasets[id]
		}
		ms.datasets[id] = l
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (ms *memoryStore) Get(ctx context.Context, id string) (*dataset.Labeled, error) {
	var l *dataset.Labeled
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		l = ms.datasets[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (ms *memoryStore) Put(ctx context.Context, id string, l *dataset.Labeled) error {
	if l == nil {
		return fmt.Errorf("storing session %q: nil dataset", id)
	}
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.datasets[id] = l
		return nil
	})
}

func (ms *memoryStore) Delete(ctx context.Context, id string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.datasets, id)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}

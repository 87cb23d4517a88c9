package tree

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a store
where trees can be saved, loaded and deleted
by id.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes an id and a tree and stores the
	// tree under the id, replacing any tree
	// previously stored with it. It returns an
	// error if the tree cannot be stored.
	Save(ctx context.Context, id string, t *Tree) error
	// Load takes an id and returns the tree in the
	// store with that id, ErrTreeNotFound if there
	// is none or another error if the store cannot
	// be queried
	Load(ctx context.Context, id string) (*Tree, error)
	// Delete takes an id and deletes the tree stored
	// with it. Deleting an id without tree is not an
	// error. It returns an error if the deletion
	// cannot be performed.
	Delete(ctx context.Context, id string) error
	// Close closes the store, implementations should
	// free any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed (because of the
	// context or another error)
	Close(ctx context.Context) error
}

type memoryStore struct {
	trees map[string]*Tree
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		trees: make(map[string]*Tree),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, id string, t *Tree) error {
	if t == nil || t.root == nil {
		return ErrNilTree
	}
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.trees[id] = t
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, id string) (*Tree, error) {
	var t *Tree
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		t = ms.trees[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTreeNotFound
	}
	return t, nil
}

func (ms *memoryStore) Delete(ctx context.Context, id string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.trees, id)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
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
	if err := ctx.Err(); err != nil {
		return err
	}
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

/*
Package redisstore provides a tree.Store that keeps encoded trees in a redis DB.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/bonsai/tree"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {
	Encode(*tree.Tree) ([]byte, error)
	Decode([]byte) (*tree.Tree, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec EncodeDecoder
}

// New builds a tree.Store backed by a redis DB. Trees are stored
// under the prefix:id key. Closing the store does not close the
// client.
func New(rc *redis.Client, prefix string, encdec EncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Save(ctx context.Context, id string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(id)
	data, err := rs.encdec.Encode(t)
	if err != nil {
		return errors.Wrapf(err, "storing tree %q", key)
	}
	err = rs.rc.Set(key, data, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "storing tree %q in redis", key)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, id string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := rs.keyFor(id)
	data, err := rs.rc.Get(key).Bytes()
	if err == redis.Nil {
		return nil, tree.ErrTreeNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", key)
	}
	t, err := rs.encdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", key)
	}
	return t, nil
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(id)
	err := rs.rc.Del(key).Err()
	if err != nil {
		return errors.Wrapf(err, "deleting tree %q from redis", key)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}

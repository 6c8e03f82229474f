/*
Package redisstore provides an implementation of session.Store backed by a
redis DB, so that datasets outlive the process that stored them.
*/
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/session"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
	encdec session.EncodeDecoder
}

/*
New builds a session.Store backed by a redis DB. Datasets are stored under
keys made of the prefix and the session id, and expire after the ttl unless
it is 0.
*/
func New(rc *redis.Client, prefix string, ttl time.Duration, encdec session.EncodeDecoder) session.Store {
	return &redisStore{rc, prefix, ttl, encdec}
}

func (rs *redisStore) Create(ctx context.Context, l *dataset.Labeled) (string, error) {
	data, err := rs.encdec.Encode(ctx, l)
	if err != nil {
		return "", fmt.Errorf("creating session: encoding dataset: %w", err)
	}
	for {
		id := session.NewID()
		ok, err := rs.rc.SetNX(rs.keyFor(id), data, rs.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("creating session in redis: %w", err)
		}
		if ok {
			return id, nil
		}
		if err = ctx.Err(); err != nil {
			return "", err
		}
	}
}

func (rs *redisStore) Get(ctx context.Context, id string) (*dataset.Labeled, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving session %q: %w", id, err)
	}
	l, err := rs.encdec.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("retrieving session %q: %w", id, err)
	}
	return l, nil
}

func (rs *redisStore) Put(ctx context.Context, id string, l *dataset.Labeled) error {
	key := rs.keyFor(id)
	data, err := rs.encdec.Encode(ctx, l)
	if err != nil {
		return fmt.Errorf("storing session %q: encoding dataset: %w", key, err)
	}
	_, err = rs.rc.Set(key, data, rs.ttl).Result()
	if err != nil {
		return fmt.Errorf("storing session %q in redis: %w", key, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	key := rs.keyFor(id)
	_, err := rs.rc.Del(key).Result()
	if err != nil {
		return fmt.Errorf("deleting session %q from redis: %w", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}

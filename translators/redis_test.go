/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package translators

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

func newRedisClient(t *testing.T, mr *miniredis.Miniredis) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{Addr: mr.Addr(), PoolSize: 1, MaxRetries: -1})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedis_LiveClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := newRedisClient(t, mr)
	ic, err := faultx.NewInterceptor(faultx.MustChain(Redis()))
	require.NoError(t, err)

	get := func(key string) faultx.Invocation[string] {
		return faultx.Invocation[string]{
			Name: "redis.get",
			Work: func(ctx context.Context) (string, error) { return client.Get(ctx, key).Result() },
		}
	}

	require.NoError(t, mr.Set("present", "v"))
	v, err := faultx.Invoke(t.Context(), ic, get("present"))
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = faultx.Invoke(t.Context(), ic, get("absent"))
	fe, ok := faultx.As(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, code.EmptyResult, fe.Code)
	assert.ErrorIs(t, err, redis.Nil)

	_, err = faultx.Invoke(t.Context(), ic, faultx.Invocation[string]{
		Work:     get("absent").Work,
		Declared: []faultx.Kind{faultx.KindIs(redis.Nil)},
	})
	assert.Equal(t, redis.Nil, err)
}

func TestRedis_ServerBusy(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := newRedisClient(t, mr)
	require.NoError(t, client.Ping(t.Context()).Err())

	mr.SetError("LOADING Redis is loading the dataset in memory")
	err := client.Get(t.Context(), "k").Err()
	require.Error(t, err)

	fe := Redis().Translate(err)
	require.NotNil(t, fe)
	assert.Equal(t, code.TransientResource, fe.Code)
	assert.Equal(t, reason.MustParse("storage.redis.busy"), fe.Reason)
	assert.Equal(t, "LOADING", fe.Details["prefix"])
	assert.True(t, fe.Transient())

	mr.SetError("")
	assert.NoError(t, client.Ping(t.Context()).Err())
}

func TestRedis_WatchConflict(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := newRedisClient(t, mr)
	other := newRedisClient(t, mr)
	require.NoError(t, mr.Set("balance", "10"))

	err := client.Watch(t.Context(), func(tx *redis.Tx) error {
		if err := other.Set(t.Context(), "balance", "5", 0).Err(); err != nil {
			return err
		}
		_, err := tx.TxPipelined(t.Context(), func(p redis.Pipeliner) error {
			p.Set(t.Context(), "balance", "20", 0)
			return nil
		})
		return err
	}, "balance")
	require.ErrorIs(t, err, redis.TxFailedErr)

	fe := Redis().Translate(err)
	require.NotNil(t, fe)
	assert.Equal(t, code.OptimisticLocking, fe.Code)
}

func TestRedis_ClosedClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Close())

	fe := Redis().Translate(client.Get(t.Context(), "k").Err())
	require.NotNil(t, fe)
	assert.Equal(t, code.ResourceFailure, fe.Code)
}

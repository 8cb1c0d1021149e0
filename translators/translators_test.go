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
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTranslators(t *testing.T) {
	tests := []struct {
		name       string
		translator faultx.Translator
		err        error
		wantCode   code.Code
		wantReason reason.Reason
	}{
		{"sql no rows", SQL(), fmt.Errorf("get user: %w", sql.ErrNoRows), code.EmptyResult, "storage.sql.no_rows"},
		{"sql conn done", SQL(), sql.ErrConnDone, code.ResourceFailure, "storage.sql.conn_done"},
		{"sql tx done", SQL(), sql.ErrTxDone, code.InvalidUsage, "storage.sql.tx_done"},

		{"pg unique", Postgres(), &pq.Error{Code: "23505"}, code.DuplicateKey, "storage.pg.unique_violation"},
		{"pg fk class", Postgres(), &pq.Error{Code: "23503"}, code.DataIntegrity, "storage.pg.foreign_key_violation"},
		{"pg deadlock", Postgres(), &pq.Error{Code: "40P01"}, code.DeadlockLoser, "storage.pg.deadlock_detected"},
		{"pg serialization", Postgres(), &pq.Error{Code: "40001"}, code.ConcurrencyFailure, "storage.pg.serialization_failure"},
		{"pg canceled", Postgres(), &pq.Error{Code: "57014"}, code.QueryTimeout, "storage.pg.query_canceled"},
		{"pg syntax", Postgres(), &pq.Error{Code: "42601"}, code.BadGrammar, "storage.pg.syntax_error"},
		{"pg conn", Postgres(), &pq.Error{Code: "08006"}, code.ResourceFailure, "storage.pg.connection_failure"},
		{"pg unknown", Postgres(), &pq.Error{Code: "ZZ999"}, code.Uncategorized, "storage.pg"},

		{"redis nil", Redis(), redis.Nil, code.EmptyResult, "storage.redis.nil"},
		{"redis tx", Redis(), redis.TxFailedErr, code.OptimisticLocking, "storage.redis.tx_failed"},
		{"redis closed", Redis(), redis.ErrClosed, code.ResourceFailure, "storage.redis.closed"},

		{"mongo no docs", Mongo(), mongo.ErrNoDocuments, code.EmptyResult, "storage.mongo.no_documents"},
		{"mongo dup", Mongo(), mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000"}}}, code.DuplicateKey, "storage.mongo.duplicate_key"},
		{"mongo timeout", Mongo(), mongo.CommandError{Code: 50, Name: "MaxTimeMSExpired"}, code.QueryTimeout, "storage.mongo.timeout"},
		{"mongo network", Mongo(), mongo.CommandError{Code: 6, Labels: []string{"NetworkError"}}, code.ResourceFailure, "storage.mongo.network"},
		{"mongo other", Mongo(), mongo.CommandError{Code: 2, Name: "BadValue"}, code.Uncategorized, "storage.mongo"},

		{"breaker open", Breaker(), gobreaker.ErrOpenState, code.TransientResource, "breaker.open"},
		{"breaker half open", Breaker(), gobreaker.ErrTooManyRequests, code.TransientResource, "breaker.half_open"},

		{"deadline", Context(), fmt.Errorf("query: %w", context.DeadlineExceeded), code.QueryTimeout, "context.deadline"},
		{"canceled", Context(), context.Canceled, code.Canceled, "context.canceled"},
		{"conn refused", Context(), &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, code.ResourceFailure, "net.conn"},
		{"net timeout", Context(), &net.OpError{Op: "read", Err: timeoutErr{}}, code.QueryTimeout, "net.timeout"},
		{"net op", Context(), &net.OpError{Op: "write", Err: errors.New("broken pipe")}, code.ResourceFailure, "net.op"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := tt.translator.Translate(tt.err)
			require.NotNil(t, fe)
			assert.Equal(t, tt.wantCode, fe.Code)
			assert.Equal(t, tt.wantReason, fe.Reason)
			assert.NoError(t, reason.Validate(fe.Reason))
			assert.Nil(t, fe.Cause, "translators leave Cause to the chain")
		})
	}
}

func TestTranslators_DeclineForeignFaults(t *testing.T) {
	foreign := []error{
		errors.New("plain"),
		context.DeadlineExceeded,
	}
	for _, tr := range []faultx.Translator{SQL(), Postgres(), Redis(), Mongo(), Breaker()} {
		for _, err := range foreign {
			assert.Nil(t, tr.Translate(err), "%T must decline %v", tr, err)
		}
	}
	assert.Nil(t, Context().Translate(sql.ErrNoRows))
}

func TestPostgres_Details(t *testing.T) {
	fe := Postgres().Translate(&pq.Error{Code: "23505", Constraint: "orders_pkey", Table: "orders"})
	require.NotNil(t, fe)
	assert.Equal(t, "23505", fe.Details["sqlstate"])
	assert.Equal(t, "orders_pkey", fe.Details["constraint"])
	assert.Equal(t, "orders", fe.Details["table"])
	assert.NotContains(t, fe.Message, "orders_pkey")
}

func TestDefaults_OrderAndChain(t *testing.T) {
	assert.Equal(t, []string{"postgres", "sql", "mongo", "redis", "breaker", "context"}, Names())

	chain, err := faultx.NewChain(Defaults()...)
	require.NoError(t, err)
	assert.Equal(t, len(Names()), chain.Len())

	// A pq cancellation wrapped together with a context error is classified
	// by the driver translator, which runs first.
	err = fmt.Errorf("%w: %w", &pq.Error{Code: "57014"}, context.DeadlineExceeded)
	fe := chain.Translate(err)
	require.NotNil(t, fe)
	assert.Equal(t, reason.Reason("storage.pg.query_canceled"), fe.Reason)
	assert.True(t, fe.Cause == err, "cause must be the original fault")
}

func TestByName(t *testing.T) {
	ts, err := ByName(NameRedis, NameSQL)
	require.NoError(t, err)
	assert.Len(t, ts, 2)

	_, err = ByName("oracle")
	assert.ErrorContains(t, err, `unknown translator "oracle"`)
}

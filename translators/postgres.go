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
	"errors"

	"github.com/lib/pq"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Exact SQLSTATE values handled before their class.
var pgStates = map[pq.ErrorCode]code.Code{
	"23505": code.DuplicateKey,
	"40001": code.ConcurrencyFailure,
	"40P01": code.DeadlockLoser,
	"55P03": code.CannotAcquireLock,
	"57014": code.QueryTimeout,
	"42501": code.PermissionDenied,
	"57P01": code.TransientResource, // admin_shutdown
	"57P02": code.TransientResource, // crash_shutdown
	"57P03": code.TransientResource, // cannot_connect_now
	"25006": code.InvalidUsage,      // read_only_sql_transaction
}

// SQLSTATE classes.
var pgClasses = map[pq.ErrorClass]code.Code{
	"08": code.ResourceFailure,  // connection_exception
	"23": code.DataIntegrity,    // integrity_constraint_violation
	"22": code.DataIntegrity,    // data_exception
	"25": code.InvalidUsage,     // invalid_transaction_state
	"28": code.PermissionDenied, // invalid_authorization_specification
	"40": code.ConcurrencyFailure,
	"42": code.BadGrammar,        // syntax_error_or_access_rule_violation
	"53": code.TransientResource, // insufficient_resources
	"57": code.TransientResource, // operator_intervention
}

// Postgres translates *pq.Error by SQLSTATE. Unknown states still produce
// code.Uncategorized: the fault is known to come from Postgres.
func Postgres() faultx.Translator {
	return faultx.TranslatorFunc(translatePostgres)
}

func translatePostgres(err error) *faultx.Error {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return nil
	}

	c, ok := pgStates[pgErr.Code]
	if !ok {
		c, ok = pgClasses[pgErr.Code.Class()]
	}
	if !ok {
		c = code.Uncategorized
	}

	r, rerr := reason.Join("storage", "pg", pgErr.Code.Name())
	if rerr != nil || pgErr.Code.Name() == "" {
		r = reason.MustParse("storage.pg")
	}

	fe := faultx.E(c, "postgres: "+string(c), faultx.WithReasonOption(r)).
		WithDetail("sqlstate", string(pgErr.Code))
	if pgErr.Constraint != "" {
		fe = fe.WithDetail("constraint", pgErr.Constraint)
	}
	if pgErr.Table != "" {
		fe = fe.WithDetail("table", pgErr.Table)
	}
	return fe
}

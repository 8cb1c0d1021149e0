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

package code

// Usage faults
//
// These describe a caller or program bug: retrying the same operation will
// fail the same way.
const (
	// Uncategorized is the fallback for faults a translator recognizes as
	// belonging to its backend but cannot classify more precisely.
	Uncategorized Code = "uncategorized"

	// InvalidUsage indicates the data access API was used incorrectly, e.g.
	// a statement on a closed transaction.
	InvalidUsage Code = "invalid_usage"

	// BadGrammar indicates the backend rejected the statement itself
	// (syntax error, unknown column or table).
	BadGrammar Code = "bad_grammar"

	// PermissionDenied indicates the backend refused the operation for the
	// connected principal.
	PermissionDenied Code = "permission_denied"
)

// Data faults
//
// These describe the state of the stored data rather than the backend.
const (
	// DataIntegrity indicates a constraint violation (not-null, foreign key,
	// check) on insert or update.
	DataIntegrity Code = "data_integrity"

	// DuplicateKey is the unique-constraint subset of DataIntegrity.
	DuplicateKey Code = "duplicate_key"

	// EmptyResult indicates at least one row/document was expected but none
	// was returned.
	EmptyResult Code = "empty_result"

	// IncorrectResultSize indicates the result cardinality did not match the
	// expectation, e.g. two rows for a single-row lookup.
	IncorrectResultSize Code = "incorrect_result_size"
)

// Resource and concurrency faults
//
// These describe the backend's health or contention between callers. Most
// of them are transient.
const (
	// ResourceFailure indicates the backend could not be reached or the
	// connection broke. Usually transient from the caller's point of view.
	ResourceFailure Code = "resource_failure"

	// TransientResource indicates the backend is temporarily refusing work
	// (overload, failover, open circuit breaker).
	TransientResource Code = "transient_resource"

	// QueryTimeout indicates the operation exceeded its time budget.
	QueryTimeout Code = "query_timeout"

	// Canceled indicates the caller abandoned the operation.
	Canceled Code = "canceled"

	// ConcurrencyFailure indicates a serialization failure between
	// concurrent transactions.
	ConcurrencyFailure Code = "concurrency_failure"

	// OptimisticLocking indicates a version check failed because the data
	// changed since it was read.
	OptimisticLocking Code = "optimistic_locking"

	// DeadlockLoser indicates the backend chose this transaction as the
	// victim of a deadlock.
	DeadlockLoser Code = "deadlock_loser"

	// CannotAcquireLock indicates a lock could not be obtained without
	// waiting (NOWAIT, lock timeout).
	CannotAcquireLock Code = "cannot_acquire_lock"
)

var transient = map[Code]bool{
	ResourceFailure:    true,
	TransientResource:  true,
	QueryTimeout:       true,
	ConcurrencyFailure: true,
	OptimisticLocking:  true,
	DeadlockLoser:      true,
	CannotAcquireLock:  true,
}

// All returns every code declared by this package, in declaration order.
func All() []Code {
	return []Code{
		Uncategorized, InvalidUsage, BadGrammar, PermissionDenied,
		DataIntegrity, DuplicateKey, EmptyResult, IncorrectResultSize,
		ResourceFailure, TransientResource, QueryTimeout, Canceled,
		ConcurrencyFailure, OptimisticLocking, DeadlockLoser, CannotAcquireLock,
	}
}

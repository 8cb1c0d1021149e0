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
	"fmt"
	"slices"

	"dirpx.dev/faultx"
)

// Names of the built-in translators, in default priority order.
const (
	NamePostgres = "postgres"
	NameSQL      = "sql"
	NameMongo    = "mongo"
	NameRedis    = "redis"
	NameBreaker  = "breaker"
	NameContext  = "context"
)

// ErrUnknown is returned by ByName for a name that is not built in.
var ErrUnknown = errors.New("translators: unknown translator")

var builtin = map[string]func() faultx.Translator{
	NamePostgres: Postgres,
	NameSQL:      SQL,
	NameMongo:    Mongo,
	NameRedis:    Redis,
	NameBreaker:  Breaker,
	NameContext:  Context,
}

var defaultOrder = []string{NamePostgres, NameSQL, NameMongo, NameRedis, NameBreaker, NameContext}

// Names returns the built-in translator names in default priority order.
func Names() []string { return slices.Clone(defaultOrder) }

// Defaults returns every built-in translator in default priority order.
func Defaults() []faultx.Translator {
	ts, _ := ByName(defaultOrder...)
	return ts
}

// ByName returns the named built-in translators in the given order.
func ByName(names ...string) ([]faultx.Translator, error) {
	ts := make([]faultx.Translator, 0, len(names))
	for _, n := range names {
		f, ok := builtin[n]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknown, n)
		}
		ts = append(ts, f())
	}
	return ts, nil
}

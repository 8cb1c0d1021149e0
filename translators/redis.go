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

	"github.com/redis/go-redis/v9"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Server error prefixes meaning "try again later".
var redisTransientPrefixes = []string{"LOADING", "READONLY", "CLUSTERDOWN", "TRYAGAIN", "MASTERDOWN", "BUSY"}

// Redis translates go-redis client errors.
func Redis() faultx.Translator {
	return faultx.TranslatorFunc(translateRedis)
}

func translateRedis(err error) *faultx.Error {
	switch {
	case errors.Is(err, redis.Nil):
		return faultx.E(code.EmptyResult, "key does not exist",
			faultx.WithReasonOption(reason.MustParse("storage.redis.nil")))
	case errors.Is(err, redis.TxFailedErr):
		return faultx.E(code.OptimisticLocking, "watched key changed during transaction",
			faultx.WithReasonOption(reason.MustParse("storage.redis.tx_failed")))
	case errors.Is(err, redis.ErrClosed):
		return faultx.E(code.ResourceFailure, "redis client is closed",
			faultx.WithReasonOption(reason.MustParse("storage.redis.closed")))
	}
	for _, p := range redisTransientPrefixes {
		if redis.HasErrorPrefix(err, p) {
			return faultx.E(code.TransientResource, "redis is temporarily unavailable",
				faultx.WithReasonOption(reason.MustParse("storage.redis.busy")),
				faultx.WithDetailOption("prefix", p))
		}
	}
	return nil
}

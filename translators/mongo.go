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

	"go.mongodb.org/mongo-driver/mongo"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Mongo translates mongo-driver errors. Generic timeouts (a bare
// context.DeadlineExceeded) are left to the Context translator.
func Mongo() faultx.Translator {
	return faultx.TranslatorFunc(translateMongo)
}

func translateMongo(err error) *faultx.Error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return faultx.E(code.EmptyResult, "no documents in result",
			faultx.WithReasonOption(reason.MustParse("storage.mongo.no_documents")))
	case errors.Is(err, mongo.ErrClientDisconnected):
		return faultx.E(code.ResourceFailure, "mongo client is disconnected",
			faultx.WithReasonOption(reason.MustParse("storage.mongo.disconnected")))
	case mongo.IsDuplicateKeyError(err):
		return faultx.E(code.DuplicateKey, "duplicate key",
			faultx.WithReasonOption(reason.MustParse("storage.mongo.duplicate_key")))
	case mongo.IsNetworkError(err):
		return faultx.E(code.ResourceFailure, "mongo network error",
			faultx.WithReasonOption(reason.MustParse("storage.mongo.network")))
	}

	var se mongo.ServerError
	if !errors.As(err, &se) {
		return nil
	}
	if mongo.IsTimeout(err) {
		return faultx.E(code.QueryTimeout, "mongo operation timed out",
			faultx.WithReasonOption(reason.MustParse("storage.mongo.timeout")))
	}
	return faultx.E(code.Uncategorized, "mongo server error",
		faultx.WithReasonOption(reason.MustParse("storage.mongo")))
}

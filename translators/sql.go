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
	"database/sql"
	"errors"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// SQL translates the driver-independent errors of database/sql.
func SQL() faultx.Translator {
	return faultx.TranslatorFunc(translateSQL)
}

func translateSQL(err error) *faultx.Error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return faultx.E(code.EmptyResult, "no rows in result set",
			faultx.WithReasonOption(reason.MustParse("storage.sql.no_rows")))
	case errors.Is(err, sql.ErrConnDone):
		return faultx.E(code.ResourceFailure, "database connection is closed",
			faultx.WithReasonOption(reason.MustParse("storage.sql.conn_done")))
	case errors.Is(err, sql.ErrTxDone):
		return faultx.E(code.InvalidUsage, "transaction already committed or rolled back",
			faultx.WithReasonOption(reason.MustParse("storage.sql.tx_done")))
	}
	return nil
}

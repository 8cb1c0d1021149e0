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

// Package adapter converts normalized faults into the transport-neutral
// shapes shared by the grpcx and httpx packages and by structured logs.
package adapter

import (
	"strconv"

	"go.uber.org/zap"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/reason"
)

// Metadata keys used in gRPC ErrorInfo.
const (
	MetaCode      = "code"
	MetaReason    = "reason"
	MetaTransient = "transient"
)

// ToView converts fe into a public ErrorView. No redaction is performed;
// the view exposes exactly what fe carries except its cause.
func ToView(fe *faultx.Error) apis.ErrorView {
	if fe == nil {
		return apis.ErrorView{}
	}
	v := apis.ErrorView{
		Code:      string(fe.Code),
		Reason:    string(fe.Reason),
		Message:   fe.Message,
		Transient: fe.Transient(),
	}
	if len(fe.Details) > 0 {
		v.Details = fe.Details
	}
	return v
}

// Metadata returns the flat string metadata describing fe. The reason key
// is omitted when fe has no reason.
func Metadata(fe *faultx.Error) map[string]string {
	if fe == nil {
		return nil
	}
	md := map[string]string{
		MetaCode:      string(fe.Code),
		MetaTransient: strconv.FormatBool(fe.Transient()),
	}
	if fe.Reason != reason.Empty {
		md[MetaReason] = string(fe.Reason)
	}
	return md
}

// Fields returns zap fields describing fe together with its resolved
// transport status.
func Fields(fe *faultx.Error, st apis.Status) []zap.Field {
	if fe == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("code", string(fe.Code)),
		zap.Int("http_status", st.HTTP),
		zap.String("grpc_code", st.GRPC.String()),
	}
	if fe.Reason != reason.Empty {
		fs = append(fs, zap.String("reason", string(fe.Reason)))
	}
	if fe.Cause != nil {
		fs = append(fs, zap.NamedError("cause", fe.Cause))
	}
	return fs
}

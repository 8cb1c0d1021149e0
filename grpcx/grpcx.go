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

// Package grpcx connects faultx to gRPC on both sides of a call.
//
// On the server, UnaryServerInterceptor runs each handler as a faultx
// invocation and turns the resulting normalized fault into a gRPC status
// carrying an errdetails.ErrorInfo. On the client, StatusTranslator maps a
// received status back into the taxonomy, restoring the exact code and
// reason when the server was faultx-aware.
package grpcx

import (
	"context"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/adapter"
	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Domain is the ErrorInfo domain stamped on statuses produced by this
// package.
const Domain = "faultx.dirpx.dev"

// Metadata keys on the ErrorInfo.
const (
	MetaCode      = adapter.MetaCode
	MetaReason    = adapter.MetaReason
	MetaTransient = adapter.MetaTransient
)

// StatusKind matches errors that already carry a gRPC status. Handlers
// returning such errors made an explicit transport decision, so the
// server interceptor always declares this kind.
var StatusKind = faultx.KindFunc("grpc.status", func(err error) bool {
	_, ok := gstatus.FromError(err)
	return ok
})

// NormalizedKind matches errors that are already normalized faults, e.g.
// returned by a handler that called faultx.E itself.
var NormalizedKind = faultx.KindOf[*faultx.Error]()

// UnaryServerInterceptor runs handlers through ic. Normalized faults, both
// translated and returned directly by the handler, are converted with
// ToStatus; every other error is returned as the handler produced it.
func UnaryServerInterceptor(ic *faultx.Interceptor, m apis.Mapper, declared ...faultx.Kind) grpc.UnaryServerInterceptor {
	kinds := append([]faultx.Kind{StatusKind, NormalizedKind}, declared...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := faultx.Invoke(ctx, ic, faultx.Invocation[any]{
			Name:     info.FullMethod,
			Work:     func(ctx context.Context) (any, error) { return handler(ctx, req) },
			Declared: kinds,
		})
		if err == nil {
			return resp, nil
		}
		if fe, ok := faultx.As(err); ok {
			return nil, ToStatus(fe, m).Err()
		}
		return nil, err
	}
}

// ToStatus renders fe as a gRPC status using m for the status code. The
// status carries an ErrorInfo with the code, reason and transient flag; if
// attaching it fails the bare status is returned.
func ToStatus(fe *faultx.Error, m apis.Mapper) *gstatus.Status {
	base := gstatus.New(m.GRPCStatus(fe.Code, fe.Reason), fe.Message)

	info := &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(fe.Code)),
		Domain:   Domain,
		Metadata: adapter.Metadata(fe),
	}
	if with, err := base.WithDetails(info); err == nil {
		return with
	}
	return base
}

// ExtractInfo returns the faultx ErrorInfo carried by a gRPC error.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}

var statusCodes = map[gcodes.Code]code.Code{
	gcodes.NotFound:           code.EmptyResult,
	gcodes.AlreadyExists:      code.DuplicateKey,
	gcodes.FailedPrecondition: code.DataIntegrity,
	gcodes.Aborted:            code.ConcurrencyFailure,
	gcodes.DeadlineExceeded:   code.QueryTimeout,
	gcodes.Canceled:           code.Canceled,
	gcodes.Unavailable:        code.ResourceFailure,
	gcodes.ResourceExhausted:  code.TransientResource,
	gcodes.PermissionDenied:   code.PermissionDenied,
	gcodes.Unauthenticated:    code.PermissionDenied,
	gcodes.InvalidArgument:    code.InvalidUsage,
	gcodes.Unimplemented:      code.InvalidUsage,
	gcodes.Internal:           code.Uncategorized,
	gcodes.Unknown:            code.Uncategorized,
	gcodes.DataLoss:           code.Uncategorized,
	gcodes.OutOfRange:         code.InvalidUsage,
}

// StatusTranslator translates gRPC status errors received by a client.
// A faultx ErrorInfo, when present and valid, takes precedence over the
// status code.
func StatusTranslator() faultx.Translator {
	return faultx.TranslatorFunc(translateStatus)
}

func translateStatus(err error) *faultx.Error {
	st, ok := gstatus.FromError(err)
	if !ok || st.Code() == gcodes.OK {
		return nil
	}

	if info, ok := ExtractInfo(err); ok {
		c, cerr := code.Parse(info.GetMetadata()[MetaCode])
		r, rerr := reason.Parse(info.GetMetadata()[MetaReason])
		if cerr == nil && rerr == nil {
			return faultx.E(c, st.Message(), faultx.WithReasonOption(r))
		}
	}

	c, ok := statusCodes[st.Code()]
	if !ok {
		return nil
	}
	r, err := reason.Join("rpc", snake(st.Code()))
	if err != nil {
		r = reason.MustParse("rpc")
	}
	return faultx.E(c, st.Message(), faultx.WithReasonOption(r))
}

// snake renders e.g. DeadlineExceeded as deadline_exceeded.
func snake(c gcodes.Code) string {
	var b strings.Builder
	for i, r := range c.String() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

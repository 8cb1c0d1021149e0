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

// Package httpx writes normalized faults as HTTP responses and runs
// error-returning handlers through a faultx.Interceptor.
package httpx

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/adapter"
	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Writer turns errors into JSON error responses.
type Writer struct {
	Mapper apis.Mapper

	// RetryAfter, when positive, is sent as Retry-After on transient faults.
	RetryAfter int

	// Logger receives encoding failures and untranslated errors.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Write responds with err. Normalized faults get the mapped status and a
// body of the apis.ErrorView shape; any other error is answered with the
// fallback for code.Uncategorized and no details.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	fe, ok := faultx.As(err)
	if !ok {
		w.logger().Warn("writing untranslated error", zap.Error(err))
		fe = faultx.E(code.Uncategorized, http.StatusText(http.StatusInternalServerError))
	}

	st := w.Mapper.Status(fe.Code, fe.Reason)
	w.logger().Debug("writing fault", adapter.Fields(fe, st)...)

	body, encErr := encode(adapter.ToView(fe))
	if encErr != nil {
		w.logger().Error("encoding error view", zap.Error(encErr))
		body, _ = encode(apis.ErrorView{Code: string(fe.Code), Reason: string(fe.Reason), Message: fe.Message})
	}

	rw.Header().Set("Content-Type", "application/json")
	if w.RetryAfter > 0 && fe.Transient() {
		rw.Header().Set("Retry-After", strconv.Itoa(w.RetryAfter))
	}
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(body)
}

func (w Writer) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

// encode renders v through structpb so details of any JSON-compatible type
// are serialized the same way the gRPC side would see them.
func encode(v apis.ErrorView) ([]byte, error) {
	fields := map[string]any{"code": v.Code}
	if v.Reason != string(reason.Empty) {
		fields["reason"] = v.Reason
	}
	if v.Message != "" {
		fields["message"] = v.Message
	}
	if v.Transient {
		fields["transient"] = true
	}
	if len(v.Details) > 0 {
		fields["details"] = v.Details
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(rw http.ResponseWriter, r *http.Request) error

// Handler adapts fn into an http.Handler. Each request runs as an
// invocation named by name; normalized faults are passed through and any
// resulting error is written with w. When fn already started the response
// before failing, the error is only logged.
func Handler(ic *faultx.Interceptor, w Writer, name string, fn HandlerFunc, declared ...faultx.Kind) http.Handler {
	kinds := append([]faultx.Kind{faultx.KindOf[*faultx.Error]()}, declared...)
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: rw}
		err := ic.Do(r.Context(), name, func(context.Context) error { return fn(tw, r) }, kinds...)
		if err == nil {
			return
		}
		if tw.started {
			w.logger().Warn("response already started, error not written",
				zap.String("invocation", name),
				zap.Error(err),
			)
			return
		}
		w.Write(rw, err)
	})
}

// trackingWriter records whether a handler wrote headers or body.
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (t *trackingWriter) WriteHeader(status int) {
	t.started = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.started = true
	return t.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (t *trackingWriter) Unwrap() http.ResponseWriter { return t.ResponseWriter }

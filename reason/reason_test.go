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

package reason

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+lower", "  Storage.PG.Unique_Violation  ", "storage.pg.unique_violation"},
		{"slash to dot", "storage/redis/nil", "storage.redis.nil"},
		{"dash to underscore", "storage.pg.lock-not-available", "storage.pg.lock_not_available"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Reason
		wantErr error
	}{
		{"simple", "storage.pg.unique_violation", "storage.pg.unique_violation", nil},
		{"slash", "storage/mongo", "storage.mongo", nil},
		{"empty is ok", "   ", Empty, nil},
		{"too short", "ab", Empty, ErrReasonInvalidLength},
		{"digit first", "storage.pg.23505", Empty, ErrReasonInvalidFormat},
		{"empty segment", "storage..pg", Empty, ErrReasonInvalidFormat},
		{"too deep", "a1.b1.c1.d1.e1", Empty, ErrReasonInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParse_RejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse(\"\") did not panic")
		}
	}()
	_ = MustParse("")
}

func TestJoin(t *testing.T) {
	r, err := Join("storage", "redis", "nil")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if r != "storage.redis.nil" {
		t.Fatalf("Join = %q", r)
	}
	if _, err := Join("storage", "", "nil"); err == nil {
		t.Fatal("Join with empty segment must fail")
	}
}

func TestHasPrefix(t *testing.T) {
	r := MustParse("storage.pg.unique_violation")
	tests := []struct {
		pattern string
		want    bool
	}{
		{"storage", true},
		{"storage.pg", true},
		{"storage.*.unique_violation", true},
		{"storage.p", false},
		{"storage.mongo", false},
		{"storage.pg.unique_violation.extra", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := r.HasPrefix(tt.pattern); got != tt.want {
			t.Fatalf("HasPrefix(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
	if Empty.HasPrefix("storage") {
		t.Fatal("Empty must not match any prefix")
	}
}

func TestText_RoundTrip(t *testing.T) {
	var r Reason
	if err := r.UnmarshalText([]byte("Storage/Redis/Nil")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, err := r.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "storage.redis.nil" {
		t.Fatalf("MarshalText = %q", b)
	}
}

// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errorutil holds shared test assertion helpers.
package errorutil

import (
	"errors"
	"testing"
)

// AssertTestError asserts the presence or absence of an error based on
// expectations. It can also check for a specific expected error.
//
// Example:
//
//	_, err := catalog.Load(products, attrs)
//	errorutil.AssertTestError(t, err, true, catalog.ErrMissingIndex, "Load()")
func AssertTestError(t *testing.T, err error, wantError bool, wantSpecificErr error, funcName string) {
	t.Helper()

	if !wantError {
		if err != nil {
			t.Fatalf("%s unexpected error: %v", funcName, err)
		}
		return
	}

	if err == nil {
		if wantSpecificErr != nil {
			t.Fatalf("%s expected error %v but got nil", funcName, wantSpecificErr)
		} else {
			t.Fatalf("%s expected an error but got nil", funcName)
		}
		return
	}

	if wantSpecificErr != nil && !errors.Is(err, wantSpecificErr) {
		t.Fatalf("%s error = %v, want %v", funcName, err, wantSpecificErr)
	}
}

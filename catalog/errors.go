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

package catalog

import "errors"

var (
	// ErrDataFormat is returned when the product file is absent or does
	// not contain a JSON array of records.
	ErrDataFormat = errors.New("catalog data format invalid")
	// ErrMissingIndex is returned when the attribute file is absent.
	// Attributes are required: the reward scorer depends on them.
	ErrMissingIndex = errors.New("attribute index missing")
	// ErrNotFound is returned when an ASIN is not in the catalog.
	ErrNotFound = errors.New("product not found")
)

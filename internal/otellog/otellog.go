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

// Package otellog emits structured log events through the global
// OpenTelemetry logger provider. Events are dropped unless a provider is
// installed (see the telemetry package).
package otellog

import (
	"context"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

const scopeName = "github.com/webshop-bench/webshop"

var logger = global.GetLoggerProvider().Logger(scopeName)

// Event emits a single named event with a map body built from kvs.
func Event(ctx context.Context, name string, kvs ...log.KeyValue) {
	record := log.Record{}
	record.SetEventName(name)
	record.SetBody(log.MapValue(kvs...))
	logger.Emit(ctx, record)
}

// Warn emits an event at warn severity.
func Warn(ctx context.Context, name string, kvs ...log.KeyValue) {
	record := log.Record{}
	record.SetEventName(name)
	record.SetSeverity(log.SeverityWarn)
	record.SetBody(log.MapValue(kvs...))
	logger.Emit(ctx, record)
}

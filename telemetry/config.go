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

// Package telemetry sets up the OpenTelemetry providers for the
// simulation: spans around session steps and structured log events for
// loader statistics and malformed actions.
package telemetry

import (
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type config struct {
	// serviceName is attached as the service.name resource attribute.
	serviceName string

	// resource allows customizing the OTel resource. It is merged with
	// the defaults.
	resource *resource.Resource

	// spanProcessors allow registering additional span processors, e.g.
	// for custom span exporters.
	spanProcessors []sdktrace.SpanProcessor
}

// Option configures telemetry setup.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (fn optionFunc) apply(cfg *config) error {
	return fn(cfg)
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return optionFunc(func(cfg *config) error {
		cfg.serviceName = name
		return nil
	})
}

// WithResource merges a custom resource into the default one.
func WithResource(r *resource.Resource) Option {
	return optionFunc(func(cfg *config) error {
		cfg.resource = r
		return nil
	})
}

// WithSpanProcessor registers an additional span processor.
func WithSpanProcessor(p sdktrace.SpanProcessor) Option {
	return optionFunc(func(cfg *config) error {
		cfg.spanProcessors = append(cfg.spanProcessors, p)
		return nil
	})
}

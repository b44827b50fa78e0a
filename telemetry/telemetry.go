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

package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.36.0"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/webshop-bench/webshop"

const defaultServiceName = "webshop"

// Tracer returns the tracer used for simulation spans. It honors the
// global tracer provider, so Setup (or any other provider installation)
// takes effect without further wiring.
func Tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(scopeName)
}

// Providers holds the installed providers so the caller can shut them
// down.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
}

// Shutdown flushes and stops the installed providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if p.loggerProvider != nil {
		if err := p.loggerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown: %v", errs)
	}
	return nil
}

// Setup installs global tracer and logger providers. Exporters are only
// created when an OTLP endpoint is configured through the standard
// OTEL_EXPORTER_OTLP_* environment variables; otherwise the providers
// stay local (spans and events are dropped).
//
// The caller must call Shutdown on the returned Providers to flush
// pending telemetry.
func Setup(ctx context.Context, opts ...Option) (*Providers, error) {
	cfg := &config{serviceName: defaultServiceName}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	res, err := resolveResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	providers := &Providers{}

	spanProcessors := cfg.spanProcessors
	if otlpConfigured() {
		exporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		spanProcessors = append(spanProcessors, sdktrace.NewBatchSpanProcessor(exporter))
	}
	if len(spanProcessors) > 0 {
		tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
		for _, p := range spanProcessors {
			tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(p))
		}
		providers.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
		otel.SetTracerProvider(providers.tracerProvider)
	}

	if otlpConfigured() {
		logExporter, err := otlploghttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		providers.loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		)
		global.SetLoggerProvider(providers.loggerProvider)
	}

	return providers, nil
}

func otlpConfigured() bool {
	if _, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		return true
	}
	if _, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); ok {
		return true
	}
	return false
}

// resolveResource merges the default resource, the service name and the
// resource from config, later attributes overriding earlier ones.
func resolveResource(ctx context.Context, cfg *config) (*resource.Resource, error) {
	r := resource.Default()
	named, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	r, err = resource.Merge(r, named)
	if err != nil {
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}
	if cfg.resource != nil {
		r, err = resource.Merge(r, cfg.resource)
		if err != nil {
			return nil, fmt.Errorf("failed to merge with config resource: %w", err)
		}
	}
	return r, nil
}

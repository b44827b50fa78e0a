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

// Command webshop drives the shopping simulation from the terminal:
// interactive play, goal inspection and search index queries.
package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/webshop-bench/webshop/config"
	"github.com/webshop-bench/webshop/env"
	"github.com/webshop-bench/webshop/telemetry"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "webshop",
	Short: "Text-based shopping simulation",
	Long: `webshop runs the in-memory shopping simulation: load a product
catalog, generate shopping goals, and interact with goal-bound sessions
through the search/click action grammar.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the environment YAML config")
	rootCmd.AddCommand(playCmd, goalsCmd, searchCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(configPath)
}

func buildServer() (*env.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return env.BuildServer(cfg)
}

func main() {
	ctx := context.Background()
	providers, err := telemetry.Setup(ctx)
	if err != nil {
		log.Fatalf("telemetry setup failed: %v", err)
	}
	defer func() {
		if err := providers.Shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown failed: %v", err)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

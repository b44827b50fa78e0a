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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var goalsLimit int

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Generate and dump the goal set",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := buildServer()
		if err != nil {
			return err
		}
		goals := server.Goals()
		fmt.Printf("%d goals\n", len(goals))
		for i, g := range goals {
			if goalsLimit > 0 && i >= goalsLimit {
				break
			}
			fmt.Printf("%4d  %-12s w=%.4f  %s\n", i, g.ASIN, g.Weight, g.Instruction)
		}
		return nil
	},
}

func init() {
	goalsCmd.Flags().IntVar(&goalsLimit, "limit", 20, "how many goals to print; 0 prints all")
}

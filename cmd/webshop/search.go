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
	"strings"

	"github.com/spf13/cobra"
)

var searchTopN int

var searchCmd = &cobra.Command{
	Use:   "search <keywords...>",
	Short: "Query the catalog index directly",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := buildServer()
		if err != nil {
			return err
		}
		keywords := strings.Fields(strings.Join(args, " "))
		results, err := server.Search(cmd.Context(), keywords, searchTopN)
		if err != nil {
			return err
		}
		for _, p := range results {
			fmt.Printf("%-12s %-8s %s\n", p.ASIN, p.PriceTag, p.Title)
		}
		fmt.Printf("%d results\n", len(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchTopN, "top", 10, "result count")
}

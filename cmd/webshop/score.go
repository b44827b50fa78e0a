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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webshop-bench/webshop/reward"
)

var scoreCmd = &cobra.Command{
	Use:   "score <goal-index> <asin> [name=value...]",
	Short: "Score a hypothetical purchase against a goal",
	Long: `score computes the reward for buying the given product with the given
option selections, against the goal at the given index. Useful for
debugging reward expectations without stepping a session.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := buildServer()
		if err != nil {
			return err
		}
		goals := server.Goals()
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < 0 || idx >= len(goals) {
			return fmt.Errorf("goal index %q out of range [0, %d)", args[0], len(goals))
		}
		g := goals[idx]

		product, err := server.Catalog().Get(args[1])
		if err != nil {
			return err
		}
		price, err := server.Catalog().Price(args[1])
		if err != nil {
			return err
		}

		selected := make(map[string]string)
		for _, pair := range args[2:] {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("option %q is not name=value", pair)
			}
			selected[strings.ToLower(name)] = strings.ToLower(value)
		}

		total, b, err := reward.Score(product, g, price, selected)
		if err != nil {
			return err
		}
		fmt.Printf("goal:       %s\n", g.Instruction)
		fmt.Printf("product:    %s (%s, price %.2f)\n", product.Title, product.ASIN, price)
		fmt.Printf("type:       %.2f (query=%v category=%v title=%.2f)\n",
			b.RType, b.QueryMatch, b.CategoryMatch, b.TitleScore)
		fmt.Printf("attributes: %d/%d\n", b.AttributeMatches, len(g.Attributes))
		fmt.Printf("options:    %d/%d\n", b.OptionMatches, len(g.Options))
		fmt.Printf("price ok:   %v\n", b.RPrice)
		fmt.Printf("total:      %.4f\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

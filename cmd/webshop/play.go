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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webshop-bench/webshop/env"
)

var playSessionID string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactively step one session",
	Long: `play starts a session and reads actions from stdin, one per line:
search[wireless mouse], click[B01ABC1234], click[Buy Now], ...
Type "reset" for a fresh session and "quit" to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := buildServer()
		if err != nil {
			return err
		}
		textEnv := env.NewTextEnv(server, playSessionID)
		obs, _ := textEnv.Reset()
		fmt.Println(obs)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "quit", "exit":
				return nil
			case "reset":
				obs, _ := textEnv.Reset()
				fmt.Println(obs)
				continue
			}
			obs, reward, done, _, err := textEnv.Step(line)
			if err != nil {
				return err
			}
			fmt.Println(obs)
			if done {
				fmt.Printf("reward: %g\n", reward)
				fmt.Println(`session finished; type "reset" for a new one`)
			}
		}
	},
}

func init() {
	playCmd.Flags().StringVar(&playSessionID, "session", "", "session id; a numeric id pins the goal index")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dca-graph/internal/ask"
	"github.com/pdiddy/dca-graph/internal/secrets"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question about the graph",
	Long: `Ask loads the graph, has Claude translate the question into a read-only SQL
query over the triples table, runs it, and prints the rows. Without a
question argument, questions are read from stdin one per line until EOF
or "quit".

The API key comes from ai.api_key in the config, ANTHROPIC_API_KEY (also
read from .env), or .secrets/anthropic-api-key.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	ac := cfg.AI
	stringFlag(cmd, "model", &ac.Model)
	format, _ := cmd.Flags().GetString("format")
	limit, _ := cmd.Flags().GetInt("limit")
	showQuery, _ := cmd.Flags().GetBool("show-query")

	key := secrets.AnthropicKey(ac.APIKey, loadedSecrets)
	if key == "" {
		return fmt.Errorf("no Anthropic API key: set %s or .secrets/%s", secrets.AnthropicKeyEnv, secrets.AnthropicKeyFile)
	}

	store, err := openGraph(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	gen := &ask.Claude{APIKey: key, Model: ac.Model, MaxTokens: ac.MaxTokens, Timeout: cfg.Templates.Timeout}
	asker := ask.New(gen, store, limit)
	w := cmd.OutOrStdout()

	answer := func(q string) error {
		ans, err := asker.Ask(cmd.Context(), q)
		if showQuery && ans.Query != "" {
			fmt.Fprintf(w, "\n%s\n\n", ans.Query)
		}
		if err != nil {
			return err
		}
		return ask.Write(w, ans.Result, format)
	}

	if len(args) > 0 {
		return answer(strings.Join(args, " "))
	}
	return askLoop(cmd.InOrStdin(), w, answer)
}

// askLoop answers questions read line by line. Errors are printed and the
// loop continues.
func askLoop(in io.Reader, w io.Writer, answer func(string) error) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(w, "question> ")
	for sc.Scan() {
		q := strings.TrimSpace(sc.Text())
		switch {
		case q == "quit" || q == "exit":
			return nil
		case q != "":
			if err := answer(q); err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
		}
		fmt.Fprint(w, "question> ")
	}
	return sc.Err()
}

func init() {
	addGraphFlags(askCmd)
	askCmd.Flags().String("model", "", "Claude model (overrides config)")
	askCmd.Flags().String("format", "table", "output format: table, csv, or json")
	askCmd.Flags().Int("limit", 200, "maximum rows to print (0 = all)")
	askCmd.Flags().Bool("show-query", true, "print the generated query")

	rootCmd.AddCommand(askCmd)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string

	verbose bool

	rootCmd = &cobra.Command{
		Use:   "vault",
		Short: "Zero-knowledge personal vault with device sync",
		Long: `vault keeps notes, passwords, and links sealed under a master secret
that never leaves this machine. Records live in a local SQLite store and
replicate to a configured remote document store, so every device holding
the master secret converges to the same vault.

The remote only ever sees ciphertext. Losing the master secret means
losing the records sealed under it; there is no recovery path.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", orNA(buildVersion), orNA(buildDate), orNA(buildCommit)),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage and replication internals to stderr")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

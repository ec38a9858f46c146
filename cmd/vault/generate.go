package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateLength int

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "n", 20, "secret length")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Suggest a strong random secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		secret, err := a.services.Vault.GenerateSecret(generateLength)
		if err != nil {
			return err
		}

		fmt.Println(secret)
		return nil
	},
}

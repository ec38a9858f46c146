package main

import (
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find records by title substring (sealed content is not searchable)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ownerID, err := a.owner()
		if err != nil {
			return err
		}

		records, err := a.services.Vault.SearchRecords(cmd.Context(), ownerID, args[0])
		if err != nil {
			return err
		}

		printRecordTable(records)
		return nil
	},
}

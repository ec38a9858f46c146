package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rmRevision string

func init() {
	rmCmd.Flags().StringVarP(&rmRevision, "revision", "r", "", "revision the delete is based on (defaults to the current one)")
}

var rmCmd = &cobra.Command{
	Use:   "rm <record-id>",
	Short: "Delete a record (the tombstone replicates to other devices)",
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

		revision := rmRevision
		if revision == "" {
			record, err := a.findRecord(cmd.Context(), ownerID, args[0])
			if err != nil {
				return err
			}
			revision = record.Revision
		}

		if err := a.services.Vault.DeleteRecord(cmd.Context(), args[0], revision); err != nil {
			return err
		}

		fmt.Printf("%s deleted %s\n", color.GreenString("✓"), args[0])
		return nil
	},
}

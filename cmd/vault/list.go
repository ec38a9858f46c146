package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/securenotes/go-secure-vault/models"
)

var listKind string

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "limit to one kind: note, password, or link")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records (titles and metadata only, payloads stay sealed)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ownerID, err := a.owner()
		if err != nil {
			return err
		}

		kind, err := parseKind(listKind)
		if err != nil {
			return err
		}

		records, err := a.services.Vault.ListRecords(cmd.Context(), ownerID, kind)
		if err != nil {
			return err
		}

		printRecordTable(records)
		return nil
	},
}

func printRecordTable(records []models.VaultRecord) {
	if len(records) == 0 {
		fmt.Println("vault is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTITLE\tREVISION\tUPDATED")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Kind, record.Title, record.Revision,
			record.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}

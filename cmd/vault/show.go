package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/securenotes/go-secure-vault/models"
)

var showReveal bool

func init() {
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "print stored passwords instead of masking them")
}

var showCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Unseal one record and print its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		secret, err := masterSecret()
		if err != nil {
			return err
		}

		record, payload, err := a.services.Vault.ReadRecordPlaintext(cmd.Context(), args[0], secret)
		if err != nil {
			return err
		}

		fmt.Printf("id:       %s\n", record.ID)
		fmt.Printf("kind:     %s\n", record.Kind)
		fmt.Printf("title:    %s\n", record.Title)
		fmt.Printf("revision: %s\n", record.Revision)
		fmt.Printf("updated:  %s\n", record.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		printPayload(payload)
		return nil
	},
}

func printPayload(payload models.RecordPayload) {
	switch payload.Kind {
	case models.KindNote:
		fmt.Printf("content:\n%s\n", payload.Note.Content)
	case models.KindPassword:
		fmt.Printf("username: %s\n", payload.Password.Username)
		fmt.Printf("password: %s\n", maskUnlessRevealed(payload.Password.Password))
		if payload.Password.Website != "" {
			fmt.Printf("website:  %s\n", payload.Password.Website)
		}
		if payload.Password.Notes != "" {
			fmt.Printf("notes:    %s\n", payload.Password.Notes)
		}
	case models.KindLink:
		fmt.Printf("url:      %s\n", payload.Link.URL)
		if payload.Link.Description != "" {
			fmt.Printf("about:    %s\n", payload.Link.Description)
		}
	}
}

func maskUnlessRevealed(password string) string {
	if showReveal {
		return password
	}
	return strings.Repeat("*", len(password))
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/securenotes/go-secure-vault/models"
)

var (
	editTitle    string
	editRevision string

	editContent string

	editUsername string
	editPassword string
	editWebsite  string
	editNotes    string

	editURL         string
	editDescription string
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editRevision, "revision", "r", "", "revision the edit is based on (defaults to the current one)")

	editCmd.Flags().StringVar(&editContent, "content", "", "new note body")

	editCmd.Flags().StringVar(&editUsername, "username", "", "new login name")
	editCmd.Flags().StringVar(&editPassword, "password", "", "new secret value")
	editCmd.Flags().StringVar(&editWebsite, "website", "", "new related site")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "new free-form remarks")

	editCmd.Flags().StringVar(&editURL, "url", "", "new saved address")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new annotation")
}

var editCmd = &cobra.Command{
	Use:   "edit <record-id>",
	Short: "Update a record; unset flags keep their current values",
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

		title := record.Title
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		revision := record.Revision
		if cmd.Flags().Changed("revision") {
			revision = editRevision
		}
		mergeEditFlags(cmd, &payload)

		updated, err := a.services.Vault.UpdateRecord(cmd.Context(), record.ID, revision, title, payload, secret)
		if err != nil {
			return err
		}

		fmt.Printf("%s updated %s (revision %s)\n", color.GreenString("✓"), updated.ID, updated.Revision)
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func mergeEditFlags(cmd *cobra.Command, payload *models.RecordPayload) {
	switch payload.Kind {
	case models.KindNote:
		if cmd.Flags().Changed("content") {
			payload.Note.Content = editContent
		}
	case models.KindPassword:
		if cmd.Flags().Changed("username") {
			payload.Password.Username = editUsername
		}
		if cmd.Flags().Changed("password") {
			payload.Password.Password = editPassword
		}
		if cmd.Flags().Changed("website") {
			payload.Password.Website = editWebsite
		}
		if cmd.Flags().Changed("notes") {
			payload.Password.Notes = editNotes
		}
	case models.KindLink:
		if cmd.Flags().Changed("url") {
			payload.Link.URL = editURL
		}
		if cmd.Flags().Changed("description") {
			payload.Link.Description = editDescription
		}
	}
}

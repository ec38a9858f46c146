package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/securenotes/go-secure-vault/models"
)

var (
	addKind  string
	addTitle string

	addContent string

	addUsername string
	addPassword string
	addWebsite  string
	addNotes    string

	addURL         string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addKind, "kind", "k", "note", "record kind: note, password, or link")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "record title (plaintext, searchable)")

	addCmd.Flags().StringVar(&addContent, "content", "", "note body (kind=note)")

	addCmd.Flags().StringVar(&addUsername, "username", "", "login name (kind=password)")
	addCmd.Flags().StringVar(&addPassword, "password", "", "secret value (kind=password)")
	addCmd.Flags().StringVar(&addWebsite, "website", "", "related site (kind=password)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form remarks (kind=password)")

	addCmd.Flags().StringVar(&addURL, "url", "", "saved address (kind=link)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "annotation (kind=link)")

	_ = addCmd.MarkFlagRequired("title")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Seal a new record into the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ownerID, err := a.owner()
		if err != nil {
			return err
		}

		kind, err := parseKind(addKind)
		if err != nil {
			return err
		}
		payload, err := payloadFromAddFlags(kind)
		if err != nil {
			return err
		}

		secret, err := masterSecret()
		if err != nil {
			return err
		}

		record, err := a.services.Vault.CreateRecord(cmd.Context(), ownerID, kind, addTitle, payload, secret)
		if err != nil {
			return err
		}

		fmt.Printf("%s sealed %s record %s (revision %s)\n",
			color.GreenString("✓"), record.Kind, record.ID, record.Revision)
		return nil
	},
}

func payloadFromAddFlags(kind models.RecordKind) (models.RecordPayload, error) {
	switch kind {
	case models.KindNote:
		return models.NewNotePayload(addContent), nil
	case models.KindPassword:
		if addPassword == "" {
			return models.RecordPayload{}, fmt.Errorf("kind=password requires --password")
		}
		return models.NewPasswordPayload(models.PasswordPayload{
			Username: addUsername,
			Password: addPassword,
			Website:  addWebsite,
			Notes:    addNotes,
		}), nil
	case models.KindLink:
		if addURL == "" {
			return models.RecordPayload{}, fmt.Errorf("kind=link requires --url")
		}
		return models.NewLinkPayload(models.LinkPayload{
			URL:         addURL,
			Description: addDescription,
		}), nil
	default:
		return models.RecordPayload{}, fmt.Errorf("unknown kind %q", kind)
	}
}

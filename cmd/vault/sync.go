package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/securenotes/go-secure-vault/models"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replicate with the remote store until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ownerID, err := a.owner()
		if err != nil {
			return err
		}
		if !a.remoteConfigured() {
			return fmt.Errorf("no remote store configured, set VAULT_REMOTE_ADDRESS")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := a.services.Vault.StartSync(ctx, ownerID); err != nil {
			return err
		}
		defer a.services.Vault.StopSync()

		fmt.Printf("%s replicating for %s against %s (Ctrl-C to stop)\n",
			color.CyanString("→"), ownerID, a.cfg.Remote.Address)

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nreplication stopped")
				return nil
			case event := <-a.services.Vault.SyncEvents():
				printSyncEvent(event)
			}
		}
	},
}

func printSyncEvent(event models.SyncEvent) {
	stamp := event.At.Local().Format("15:04:05")

	switch event.Kind {
	case models.SyncChange:
		fmt.Printf("%s %s %-4s %s\n", stamp, color.GreenString("✓"), event.Direction,
			strings.Join(event.RecordIDs, ", "))
	case models.SyncError:
		fmt.Printf("%s %s %-4s %v\n", stamp, color.RedString("✗"), event.Direction, event.Err)
	case models.SyncActive, models.SyncPaused:
		// too chatty for command output, visible with --verbose logging
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dukerupert/questboard/internal/backup"
	"github.com/dukerupert/questboard/internal/store"
	"github.com/spf13/cobra"
)

const passphraseEnv = "QUESTBOARD_BACKUP_PASSPHRASE"

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, list and restore encrypted snapshots",
	}

	cmd.AddCommand(
		newBackupExportCmd(),
		newBackupListCmd(),
		newBackupRestoreCmd(),
	)

	return cmd
}

func passphrase(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := os.Getenv(passphraseEnv); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("a passphrase is required (--passphrase or %s)", passphraseEnv)
}

func newBackupExportCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted snapshot into the backup directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := passphrase(pass)
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			state, err := e.openState(cmd.Context(), nil)
			if err != nil {
				return err
			}
			path, size, err := backup.WriteFile(e.cfg.BackupDir, state.Snapshot(), secret, time.Now())
			if err != nil {
				return err
			}
			b, err := store.NewBackupStore(e.db).Create(cmd.Context(), filepath.Base(path), size)
			if err != nil {
				return fmt.Errorf("recording backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup #%d written to %s (%d bytes)\n", b.ID, path, size)
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "passphrase", "", "Encryption passphrase")

	return cmd
}

func newBackupListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			backups, err := store.NewBackupStore(e.db).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups.")
				return nil
			}
			for _, b := range backups {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %8d  %s\n",
					b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.SizeBytes, b.Filename)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of backups to show")

	return cmd
}

func newBackupRestoreCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the saved state with an encrypted snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := passphrase(pass)
			if err != nil {
				return err
			}
			snap, err := backup.ReadFile(args[0], secret)
			if err != nil {
				return err
			}

			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			state, err := e.openState(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if err := state.Restore(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "passphrase", "", "Decryption passphrase")

	return cmd
}

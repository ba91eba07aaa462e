package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/dukerupert/questboard/internal/store"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the saved household settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			settings, err := store.NewSettingsStore(e.db).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}
}

// printSettings lists settings by key with the access code masked.
func printSettings(w io.Writer, settings map[string]string) {
	if len(settings) == 0 {
		fmt.Fprintln(w, "No settings saved yet.")
		return
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := settings[k]
		if k == store.KeyAccessCode {
			v = "****"
		}
		fmt.Fprintf(w, "%-18s %s\n", k, v)
	}
}

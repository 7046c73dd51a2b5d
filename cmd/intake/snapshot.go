package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/intake/internal/cli"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Inspect and remove saved drafts",
}

var snapshotListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved drafts with their age status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := cfg.OpenStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		return cli.ListSnapshots(cmd.Context(), os.Stdout, store, cfg.Persistence.MaxAge, time.Now())
	},
}

var snapshotInspectCmd = &cobra.Command{
	Use:   "inspect <mandate|speak>",
	Short: "Print the saved draft of a flow as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseKind(args[0])
		if err != nil {
			return err
		}

		store, closer, err := cfg.OpenStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		return cli.InspectSnapshot(cmd.Context(), os.Stdout, store, kind)
	},
}

var snapshotRemoveCmd = &cobra.Command{
	Use:     "rm <mandate|speak>...",
	Aliases: []string{"remove"},
	Short:   "Delete saved drafts",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := make([]domain.Kind, 0, len(args))
		for _, a := range args {
			kind, err := domain.ParseKind(a)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}

		store, closer, err := cfg.OpenStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		for _, kind := range kinds {
			if err := cli.RemoveSnapshot(cmd.Context(), store, kind); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed %s\n", kind.StorageKey())
		}
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd, snapshotInspectCmd, snapshotRemoveCmd)
	rootCmd.AddCommand(snapshotCmd)
}

package main

import (
	"errors"
	"os"

	"github.com/aretw0/intake/internal/cli"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/spf13/cobra"
)

var errInvalidForm = errors.New("form is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <mandate|speak> <file>",
	Short: "Validate a YAML or JSON form file against every step of a flow",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseKind(args[0])
		if err != nil {
			return err
		}

		ff, err := cli.ValidateFile(kind, args[1])
		if err != nil {
			return err
		}
		if len(ff.Ignored) > 0 {
			logger.Warn("ignoring unknown keys", "keys", ff.Ignored)
		}

		cli.PrintReport(os.Stdout, ff)
		if !ff.Valid() {
			return errInvalidForm
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

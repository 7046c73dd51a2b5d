package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <mandate|speak>",
	Short: "Print the field schema of a flow as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseKind(args[0])
		if err != nil {
			return err
		}
		s, err := intake.Schema(kind)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

package main

import (
	"os"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/cli"
	"github.com/aretw0/intake/internal/presentation/tui"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/spf13/cobra"
)

var fresh bool

var runCmd = &cobra.Command{
	Use:       "run <mandate|speak>",
	Short:     "Fill in a lead-capture form interactively",
	Long:      `Opens the wizard for the given kind. A saved draft younger than the configured max age is restored unless --fresh is set.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.KindMandate), string(domain.KindSpeak)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseKind(args[0])
		if err != nil {
			return err
		}

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		rt, err := newRuntime(sc.Context)
		if err != nil {
			return err
		}
		defer rt.close()

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, intake.Version)
		}

		res, err := cli.RunWizard(sc.Context, rt.manager, cli.RunOptions{
			Kind:   kind,
			In:     os.Stdin,
			Out:    os.Stdout,
			Render: tui.Auto(os.Stdout),
			Logger: logger,
			Fresh:  fresh,
		})
		if err != nil {
			return err
		}
		if sig := sc.Signal(); sig != nil {
			logger.Info("Interrupted", "signal", sig.String())
		}
		logger.Debug("session finished", "kind", kind, "outcome", res.Outcome, "reference", res.Reference)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&fresh, "fresh", false, "discard any saved draft and start from step 1")
	rootCmd.AddCommand(runCmd)
}

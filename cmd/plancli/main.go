// Command plancli generates and inspects marathon training plans offline.
package main

import (
	"alcyxob/marathon-planner/internal/config"
	"alcyxob/marathon-planner/internal/logger"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
	verbose   bool
	cfg       *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "plancli",
		Short:         "Generate and inspect 14-week marathon training plans",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			opts.cfg = &cfg
			logger.SetDebug(opts.verbose || cfg.Log.Debug)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", ".", "directory holding config.yaml and .env")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPlanCmd(opts),
		newPacesCmd(opts),
		newAssessCmd(opts),
		newAssignCmd(opts),
		newScheduleCmd(opts),
		newRestDaysCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

package commands

import (
	"github.com/de-tools/test-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/test-atlas/pkg/services/config"

	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	configPath string
	reporter   *export.Reporter
}

func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve a config document against the defaults and validate it",
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.configPath, "config", "", "Path to the report config document")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (vc *ValidateCmd) run(_ *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(vc.configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return vc.reporter.HandleValidation(cfg)
}

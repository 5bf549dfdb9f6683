package commands

import (
	"github.com/de-tools/test-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/test-atlas/pkg/services/config"
	"github.com/de-tools/test-atlas/pkg/services/report"
	"github.com/de-tools/test-atlas/pkg/store/client"

	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	configPath string
	outputDir  string
	reporter   *export.Reporter
}

func NewGenerateCmd(reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch telemetry from both sources and write the report files",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.configPath, "config", "", "Path to the report config document")
	cmd.Flags().StringVar(&gc.outputDir, "output-dir", "", "Override output.dir from the config")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Resolve(gc.configPath)
	if err != nil {
		return err
	}
	if gc.outputDir != "" {
		cfg.Output.Dir = gc.outputDir
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	creds, err := client.CredentialsFromEnv(cfg.Credentials.UsernameEnv, cfg.Credentials.AccessKeyEnv)
	if err != nil {
		return err
	}

	rep, err := report.NewRunner(cfg, creds).Run(ctx)
	if err != nil {
		return err
	}

	files, err := export.NewWriter(cfg.Output).Write(rep)
	if err != nil {
		return err
	}

	return gc.reporter.Handle(rep, files)
}

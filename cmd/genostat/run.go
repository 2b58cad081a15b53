package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unsaac-bioinfo/genostat/internal/analysis"
	"github.com/unsaac-bioinfo/genostat/internal/config"
	"github.com/unsaac-bioinfo/genostat/internal/pipeline"
)

func newRunCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run [stage ...]",
		Short: "Run the analysis pipeline",
		Long: `Run the analysis pipeline, or only the named stages. Stages whose
inputs are produced by other selected stages wait for them; independent
stages run concurrently. A stage whose inputs are missing is skipped.`,
		Example: `  genostat run                          # full pipeline
  genostat run genome-stats             # one stage
  genostat run atg stop-codons validate-codons`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg := config.FromViper(viper.GetViper())
			if err := cfg.EnsureDirs(); err != nil {
				return err
			}

			a := analysis.New(cfg)
			a.SetLogger(logger)

			stages, err := pipeline.Select(a.Stages(), args)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(stages, cfg.StageTimeout)
			runner.SetLogger(logger)
			results := runner.Run(cmd.Context())

			pipeline.WriteSummary(os.Stdout, results)
			if !pipeline.AllOK(results) {
				return fmt.Errorf("pipeline finished with failures")
			}
			return nil
		},
	}
}

func newStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the pipeline stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(viper.GetViper())
			for _, s := range analysis.New(cfg).Stages() {
				fmt.Printf("%-20s %s\n", s.Name, s.Desc)
				for _, n := range s.Needs {
					fmt.Printf("%20s needs: %s\n", "", n)
				}
				for _, m := range s.Makes {
					fmt.Printf("%20s makes: %s\n", "", m)
				}
			}
			return nil
		},
	}
}

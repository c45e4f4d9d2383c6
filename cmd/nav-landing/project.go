package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/iwvelando/nav-landing/pkg/output"
	"github.com/iwvelando/nav-landing/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		outputFormat  string
		simulationIDs []string
	)

	cmd := &cobra.Command{
		Use:   "project [FILE...]",
		Short: "Project the NAV per share of one or more parameter files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(simulationIDs) == 0 {
				return errors.New("at least one parameter file or --simulation is required")
			}

			// CLI override takes precedence over config
			format := a.conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			params := make([]config.FundParameters, 0, len(args)+len(simulationIDs))
			for _, path := range args {
				p, err := a.loadParameters(path)
				if err != nil {
					return err
				}
				params = append(params, p)
			}

			if len(simulationIDs) > 0 {
				stored, err := a.loadSimulations(cmd.Context(), simulationIDs)
				if err != nil {
					return err
				}
				params = append(params, stored...)
			}

			results, err := projection.GetProjections(a.logger, params)
			if err != nil {
				a.logger.Error("failed to compute projection",
					zap.String("op", "main.project"),
					zap.Error(err),
				)
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case constants.OutputFormatPretty:
				return output.PrettyFormat(out, results)
			case constants.OutputFormatCSV:
				return output.CsvFormat(out, results)
			default:
				return output.JSONFormat(out, results)
			}
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	cmd.Flags().StringSliceVar(&simulationIDs, "simulation", nil, "stored simulation ID to include (repeatable)")
	return cmd
}

func (a *app) loadSimulations(ctx context.Context, ids []string) ([]config.FundParameters, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	params := make([]config.FundParameters, 0, len(ids))
	for _, id := range ids {
		sim, err := s.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("simulation %s: %w", id, err)
		}
		params = append(params, sim.Parameters)
	}
	return params, nil
}

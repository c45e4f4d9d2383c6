package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outputPath   string
		simulationID string
	)

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the projection of a parameter file as an XLSX workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params config.FundParameters
			switch {
			case len(args) == 1:
				p, err := a.loadParameters(args[0])
				if err != nil {
					return err
				}
				params = p
			case simulationID != "":
				stored, err := a.loadSimulations(cmd.Context(), []string{simulationID})
				if err != nil {
					return err
				}
				params = stored[0]
			default:
				return errors.New("a parameter file or --simulation is required")
			}

			result, err := projection.GetProjection(a.logger, params)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = output.WorkbookName(result)
			}
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputPath, err)
			}
			if err := output.WriteXLSX(f, result); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}

			a.logger.Info("workbook written",
				zap.String("op", "main.export"),
				zap.String("path", outputPath),
				zap.Int("periods", len(result.Periods)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "workbook path (defaults to a name derived from the fund)")
	cmd.Flags().StringVar(&simulationID, "simulation", "", "stored simulation ID to export")
	return cmd
}

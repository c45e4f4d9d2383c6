package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simulations",
		Aliases: []string{"sim"},
		Short:   "Manage stored simulations",
	}

	var fund string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored simulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			summaries, err := s.List(cmd.Context(), fund)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFONDS\tSCÉNARIO\tVL CONNUE\tFIN\tMIS À JOUR")
			for _, summary := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					summary.ID, summary.FundName, summary.ScenarioName,
					summary.KnownNAVDate, summary.FundEndDate,
					summary.UpdatedAt.Format("02/01/2006 15:04"))
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().StringVar(&fund, "fund", "", "only list the simulations of this fund")

	saveCmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Store a parameter file, replacing the simulation of the same fund and scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.loadParameters(args[0])
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sim, err := s.Save(cmd.Context(), params)
			if err != nil {
				return err
			}
			a.logger.Info("simulation saved",
				zap.String("op", "main.simulations.save"),
				zap.String("id", sim.ID),
			)
			fmt.Fprintln(cmd.OutOrStdout(), sim.ID)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored simulation as a parameter document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sim, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("simulation %s: %w", args[0], err)
			}
			return config.EncodeDocument(cmd.OutOrStdout(), sim.Parameters)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("simulation %s: %w", args[0], err)
			}
			a.logger.Info("simulation deleted",
				zap.String("op", "main.simulations.delete"),
				zap.String("id", args[0]),
			)
			return nil
		},
	}

	cmd.AddCommand(listCmd, saveCmd, showCmd, deleteCmd)
	return cmd
}

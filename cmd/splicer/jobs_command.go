package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"splicer/internal/render"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show render history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.Batches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if batches == nil {
					batches = []render.BatchRecord{}
				}
				return writeJSON(cmd, batches)
			}
			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No renders recorded")
				return nil
			}
			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				rows = append(rows, []string{
					b.ID,
					strconv.Itoa(b.Jobs),
					strconv.Itoa(b.Succeeded),
					strconv.Itoa(b.Failed),
					strconv.Itoa(b.Canceled),
					humanize.Time(b.StartedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Batch", "Jobs", "Succeeded", "Failed", "Canceled", "Started"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of batches to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print batches as JSON")

	cmd.AddCommand(newJobsShowCommand(ctx))
	cmd.AddCommand(newJobsPruneCommand(ctx))
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	var (
		asJSON       bool
		showCommands bool
	)

	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show the jobs of one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.Jobs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				return fmt.Errorf("batch %s not found", args[0])
			}
			if asJSON {
				return writeJSON(cmd, jobs)
			}
			out := cmd.OutOrStdout()
			if showCommands {
				for _, j := range jobs {
					fmt.Fprintln(out, j.Command)
				}
				return nil
			}
			rows := make([][]string, 0, len(jobs))
			for _, j := range jobs {
				rows = append(rows, []string{
					strconv.Itoa(j.Position + 1),
					j.Output,
					string(j.Status),
					strconv.Itoa(j.Attempts),
					j.Duration.Round(time.Millisecond).String(),
					truncate(j.Error, 60),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Output", "Status", "Attempts", "Duration", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print jobs as JSON")
	cmd.Flags().BoolVar(&showCommands, "commands", false, "Print the recorded FFmpeg commands")
	return cmd
}

func newJobsPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete batches older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job record(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age of the newest job in a batch before it is removed")
	return cmd
}

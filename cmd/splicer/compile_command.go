package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicer/internal/transition"
)

type compileOutput struct {
	Output        string             `json:"output"`
	Command       string             `json:"command"`
	Args          []string           `json:"args"`
	FilterComplex string             `json:"filterComplex"`
	Transitions   []transition.Point `json:"transitions"`
	Warnings      []string           `json:"warnings"`
}

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var (
		output     string
		asJSON     bool
		graphOnly  bool
		noWarnings bool
	)

	cmd := &cobra.Command{
		Use:   "compile <project>",
		Short: "Print the FFmpeg command for a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			proj, err := loadProject(cmd.Context(), cfg, args[0], output)
			if err != nil {
				return err
			}

			job := proj.job(cfg)
			warnings := proj.Timeline.Preflight(proj.Output).Messages()
			out := cmd.OutOrStdout()

			switch {
			case asJSON:
				points := proj.Timeline.TransitionPoints()
				if points == nil {
					points = []transition.Point{}
				}
				return writeJSON(cmd, compileOutput{
					Output:        proj.Output,
					Command:       job.Command(),
					Args:          job.Args,
					FilterComplex: proj.Timeline.FilterComplex(),
					Transitions:   points,
					Warnings:      append([]string{}, warnings...),
				})
			case graphOnly:
				fmt.Fprintln(out, proj.Timeline.FilterComplex())
			default:
				fmt.Fprintln(out, job.Command())
			}
			if !noWarnings {
				for _, w := range warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: project output or <project>.mp4)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print args, filter graph and warnings as JSON")
	cmd.Flags().BoolVar(&graphOnly, "filter-graph", false, "Print only the filter_complex graph")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "Suppress pre-flight warnings")
	return cmd
}

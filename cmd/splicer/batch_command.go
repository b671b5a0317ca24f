package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"splicer/internal/config"
	"splicer/internal/render"
)

type batchFlags struct {
	output      string
	concurrency int
	retries     int
	timeout     time.Duration
	progress    string
	dryRun      bool
}

func (f *batchFlags) register(cmd *cobra.Command, withOutput bool) {
	if withOutput {
		cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: project output or <project>.mp4)")
	}
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "Parallel FFmpeg processes (default from config)")
	cmd.Flags().IntVar(&f.retries, "retries", -1, "Retries per failed job (default from config)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", -1, "Per-job timeout, 0 for none (default from config)")
	cmd.Flags().StringVar(&f.progress, "progress", "auto", "Progress bar: auto, always or never")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the commands without running them")
}

func (f *batchFlags) options(cfg *config.Config) render.Options {
	opts := render.Options{
		Concurrency: cfg.Render.Concurrency,
		Timeout:     cfg.RenderTimeout(),
		Retries:     cfg.Render.Retries,
		RetryDelay:  cfg.RetryDelay(),
	}
	if f.concurrency != 0 {
		opts.Concurrency = f.concurrency
	}
	if f.retries >= 0 {
		opts.Retries = f.retries
	}
	if f.timeout >= 0 {
		opts.Timeout = f.timeout
	}
	return opts
}

func (f *batchFlags) showProgress(w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(f.progress)) {
	case "auto", "":
		return isTerminal(w), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid --progress %q (use auto, always or never)", f.progress)
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch <project>...",
		Short: "Render several project files in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			jobs := make([]render.Job, 0, len(args))
			for _, path := range args {
				proj, err := loadProject(cmd.Context(), cfg, path, "")
				if err != nil {
					return err
				}
				jobs = append(jobs, proj.job(cfg))
			}
			summary, err := runJobs(cmd, ctx, cfg, jobs, &flags)
			if err != nil || summary == nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(*summary))
			return summaryError(*summary)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "render <project>",
		Short: "Render a project file with FFmpeg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			proj, err := loadProject(cmd.Context(), cfg, args[0], flags.output)
			if err != nil {
				return err
			}
			for _, w := range proj.Timeline.Preflight(proj.Output).Messages() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			flags.concurrency = 1
			summary, err := runJobs(cmd, ctx, cfg, []render.Job{proj.job(cfg)}, &flags)
			if err != nil || summary == nil {
				return err
			}
			res := summary.Results[0]
			if res.Status != render.StatusSucceeded {
				return summaryError(*summary)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s in %s%s\n",
				res.Job.Output, res.Result.Duration.Round(time.Millisecond), outputSize(res.Job.Output))
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

// runJobs executes jobs through the render runner and job store. A dry run
// prints the commands and returns a nil summary.
func runJobs(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, jobs []render.Job, flags *batchFlags) (*render.Summary, error) {
	if flags.dryRun {
		for _, job := range jobs {
			fmt.Fprintln(cmd.OutOrStdout(), job.Command())
		}
		return nil, nil
	}
	progress, err := flags.showProgress(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	store, err := ctx.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	opts := flags.options(cfg)
	if progress {
		bar := newProgressBar(cmd.ErrOrStderr(), len(jobs))
		opts.OnProgress = func(render.Progress) { _ = bar.Add(1) }
		defer func() { _ = bar.Finish() }()
	}

	logger := ctx.loggerValue()
	runner := render.NewRunner(render.ExecExecutor{Logger: logger}, store, logger, opts)
	summary, err := runner.Run(cmd.Context(), jobs)
	if err != nil && summary.BatchID == "" {
		return nil, err
	}
	return &summary, err
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

func renderSummaryTable(s render.Summary) string {
	rows := make([][]string, 0, len(s.Results))
	for i, res := range s.Results {
		errText := ""
		if res.Err != nil && res.Status != render.StatusSucceeded {
			errText = truncate(res.Err.Error(), 60)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			res.Job.Output,
			string(res.Status),
			strconv.Itoa(res.Attempts),
			res.Result.Duration.Round(time.Millisecond).String(),
			errText,
		})
	}
	return renderTable(
		[]string{"#", "Output", "Status", "Attempts", "Duration", "Error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func summaryError(s render.Summary) error {
	if s.OK() {
		return nil
	}
	failed := make([]string, 0, s.Failed+s.Canceled)
	for _, res := range s.Results {
		if res.Status == render.StatusSucceeded {
			continue
		}
		if res.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", res.Job.Output, res.Err))
		} else {
			failed = append(failed, fmt.Sprintf("%s: %s", res.Job.Output, res.Status))
		}
	}
	return errors.New(strings.Join(failed, "\n"))
}

func outputSize(path string) string {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return " (" + humanize.IBytes(uint64(info.Size())) + ")"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

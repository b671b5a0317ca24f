package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"splicer/internal/assets"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage the remote asset cache",
	}
	cmd.AddCommand(newAssetsAddCommand(ctx))
	cmd.AddCommand(newAssetsPathCommand(ctx))
	return cmd
}

func newAssetsAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url> <file>",
		Short: "Store a downloaded file as the cached copy of a URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := assets.CacheResolver{Dir: cfg.Paths.CacheDir}
			dst, err := cache.Store(args[0], args[1])
			if err != nil {
				return err
			}
			size := ""
			if info, err := os.Stat(dst); err == nil {
				size = " (" + humanize.IBytes(uint64(info.Size())) + ")"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %s at %s%s\n", args[0], dst, size)
			return nil
		},
	}
}

func newAssetsPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path <ref>",
		Short: "Print the path a source reference resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := assets.CacheResolver{Dir: cfg.Paths.CacheDir}
			resolved, err := cache.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}
}

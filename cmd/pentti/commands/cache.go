package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune stored solve results",
	}
	cmd.AddCommand(newCacheLsCmd(), newCacheRmCmd(), newCacheClearCmd())
	return cmd
}

func newCacheLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cache, err := openCache(ctx, configFrom(ctx), true)
			if err != nil {
				return err
			}
			defer cache.Close()

			w := cmd.OutOrStdout()
			n := 0
			for e, err := range cache.List(ctx) {
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s  %dx%d  found=%t  steps=%d  %s\n",
					e.Key, e.Record.Rows, e.Record.Cols, e.Record.Found, e.Record.Steps,
					time.Unix(e.Record.SolvedAt, 0).UTC().Format(time.RFC3339))
				n++
			}
			if n == 0 {
				fmt.Fprintln(w, "cache is empty")
			}
			return nil
		},
	}
}

func newCacheRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>...",
		Short: "Remove cached results by key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cache, err := openCache(ctx, configFrom(ctx), true)
			if err != nil {
				return err
			}
			defer cache.Close()

			for _, key := range args {
				if err := cache.Delete(ctx, key); err != nil {
					return fmt.Errorf("remove %s: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", key)
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cache, err := openCache(ctx, configFrom(ctx), true)
			if err != nil {
				return err
			}
			defer cache.Close()

			n, err := cache.Clear(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
			return nil
		},
	}
}

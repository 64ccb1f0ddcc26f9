package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured cache backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			cc := c.Config.Cache
			printKeyValue("backend", cc.Backend)
			switch s := store.(type) {
			case *cache.FileCache:
				printKeyValue("directory", s.Dir())
			case *cache.BoltCache:
				n, err := s.Len()
				if err != nil {
					return err
				}
				printKeyValue("entries", fmt.Sprint(n))
			default:
				if cc.URL != "" {
					printKeyValue("url", cc.URL)
				}
			}
			printKeyValue("ttl", cc.TTL.String())
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning("The %s backend cannot be cleared", c.Config.Cache.Backend)
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared the %s cache", c.Config.Cache.Backend)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				d, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				dir = d
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

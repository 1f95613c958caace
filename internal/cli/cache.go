package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/store"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the checksum lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. Only the checksum
// cache is cleared; the local Maven repository is shared with other tools
// and left alone.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached checksum lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.StoreOptions()
			s, err := store.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s cache: %w", opts.Backend, err)
			}
			printSuccess("Cleared checksum cache")
			printDetail("Backend: %s", describeStore(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where lookups are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printKeyValue(out, "checksums", describeStore(c.config.StoreOptions()))
			printKeyValue(out, "repository", c.config.Repository.Local)
			return nil
		},
	}
}

func describeStore(opts store.Options) string {
	switch opts.Backend {
	case store.BackendRedis:
		return "redis " + opts.Prefix
	case store.BackendMongo:
		return "mongo " + opts.MongoDatabase + "." + opts.MongoCollection
	case store.BackendNone:
		return "none"
	default:
		return opts.Dir
	}
}

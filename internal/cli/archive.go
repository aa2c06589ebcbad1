package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over archived content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printRecords(results)
		},
	}
}

func (c *CLI) snapshotsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "snapshots <url>",
		Short: "List captured snapshots of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := c.client.GetSnapshots(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return c.printRecords(snapshots)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", c.cfg.DefaultSnapshotLimit, "maximum snapshots to return")
	return cmd
}

func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url> <timestamp>",
		Short: "Find the snapshot served for a URL at a point in time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.client.Resolve(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <url> <from> <to>",
		Short: "Line-level diff between two snapshots",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.client.GetDiff(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) semanticCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "semantic <url> <from> <to>",
		Short: "Categorized changes between two snapshots",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.client.GetSemantic(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) timelineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <url>",
		Short: "Capture history of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.client.GetTimeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the archive is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) replayURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay-url <url> <timestamp>",
		Short: "Print the replay address of a capture without contacting the archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, c.client.ReplayURL(args[0], args[1]))
			return err
		},
	}
}

func (c *CLI) snapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <id>",
		Short: "Show the metadata of a single snapshot by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := client.ParseSnapshotID(args[0])
			if err != nil {
				return err
			}
			rec, err := c.client.GetSnapshot(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printRecord(rec)
		},
	}
}

func (c *CLI) frontierCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frontier",
		Short: "Show queued crawl URLs per domain, busiest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.client.FrontierHealth(cmd.Context())
			if err != nil {
				return err
			}
			return c.printRecords(rows)
		},
	}
}

func (c *CLI) outcomesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outcomes",
		Short: "Show crawl outcome counts for the last 24 hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.client.CrawlOutcomes(cmd.Context())
			if err != nil {
				return err
			}
			return c.printRecords(rows)
		},
	}
}

// Package cli implements the archivestream command-line interface.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/usestring/archivestream-mcp/internal/config"
	"github.com/usestring/archivestream-mcp/internal/logging"
	"github.com/usestring/archivestream-mcp/internal/query"
	"github.com/usestring/archivestream-mcp/internal/shape"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/extract"
	"github.com/usestring/archivestream-mcp/pkg/jsoncompact"
)

const appName = "archivestream"

// globalOpts holds the persistent flags shared by every command.
type globalOpts struct {
	baseURL string
	timeout time.Duration
	jq      string
	compact bool
	schema  bool
	verbose bool
}

// CLI holds shared state for all commands.
type CLI struct {
	out     io.Writer
	errOut  io.Writer
	cfg     *config.Config
	opts    globalOpts
	client  *client.Client
	query   *query.Engine
	extract *extract.Engine
}

// New creates a CLI that prints results to out and logs to errOut.
func New(out, errOut io.Writer, cfg *config.Config) *CLI {
	q := query.NewEngine()
	return &CLI{
		out:     out,
		errOut:  errOut,
		cfg:     cfg,
		query:   q,
		extract: extract.NewEngine(q),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Query an ArchiveStream web archive",
		Long: `archivestream issues ArchiveStream API requests from the shell and prints
the JSON results as the server returned them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.baseURL, "base-url", c.cfg.ArchiveBaseURL, "archive root URL")
	flags.DurationVar(&c.opts.timeout, "timeout", c.cfg.HTTPClientTimeout, "per-request timeout")
	flags.StringVar(&c.opts.jq, "jq", "", "jq expression applied to the result")
	flags.BoolVar(&c.opts.compact, "compact", false, "trim long arrays and strings")
	flags.BoolVar(&c.opts.schema, "schema", false, "print the inferred JSON Schema instead of the result")
	flags.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.MarkFlagsMutuallyExclusive("jq", "schema")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.snapshotsCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.semanticCommand())
	root.AddCommand(c.timelineCommand())
	root.AddCommand(c.healthCommand())
	root.AddCommand(c.frontierCommand())
	root.AddCommand(c.outcomesCommand())
	root.AddCommand(c.replayURLCommand())
	root.AddCommand(c.extractCommand())

	return root
}

// setup installs the logger and builds the archive client from the flags.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	level := "warn"
	if c.opts.verbose {
		level = "debug"
	}
	slog.SetDefault(slog.New(logging.NewHandler(c.errOut, logging.Config{
		Level:  level,
		Format: c.cfg.LogFormat,
	})))

	c.client = client.New(
		client.WithBaseURL(c.opts.baseURL),
		client.WithTimeout(c.opts.timeout),
	)
	return nil
}

// printRecord writes one result in the format the global flags select.
func (c *CLI) printRecord(rec client.Record) error {
	if c.opts.schema {
		inferred, err := shape.InferRecords(rec)
		if err != nil {
			return err
		}
		return c.printJSON(inferred)
	}
	return c.render(rec)
}

// printRecords writes a list result. With --schema the schema describes a
// single element.
func (c *CLI) printRecords(recs []client.Record) error {
	if c.opts.schema {
		inferred, err := shape.InferRecords(recs...)
		if err != nil {
			return err
		}
		return c.printJSON(inferred)
	}
	return c.render(client.Records(recs))
}

func (c *CLI) render(rec client.Record) error {
	if c.opts.jq != "" {
		res, err := c.query.RunRecord(rec, c.opts.jq, 0)
		if err != nil {
			return err
		}
		for _, msg := range res.Errors {
			slog.Warn("jq error", slog.String("error", msg))
		}
		for _, v := range res.Values {
			if c.opts.compact {
				v = jsoncompact.CompactValue(v, c.cfg.CompactOptions())
			}
			if err := c.printJSON(v); err != nil {
				return err
			}
		}
		return nil
	}

	data := []byte(rec)
	if c.opts.compact {
		var err error
		if data, err = jsoncompact.Compact(data, c.cfg.CompactOptions()); err != nil {
			return err
		}
	}

	// Indent the bytes directly so keys stay in server order.
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("formatting result: %w", err)
	}
	buf.WriteByte('\n')
	_, err := c.out.Write(buf.Bytes())
	return err
}

func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func (c *CLI) extractCommand() *cobra.Command {
	var (
		mode       string
		maxResults int
	)
	cmd := &cobra.Command{
		Use:   "extract <url> <timestamp> <expression>",
		Short: "Replay a capture and extract values with CSS, XPath, regex or jq",
		Long: `extract fetches the capture of <url> nearest to <timestamp> from the replay
endpoint and prints every value <expression> selects, one JSON value per line.

The mode defaults to the capture's content type: css for HTML, xpath for XML,
jq for JSON and YAML, regex otherwise. A CSS selector ending in @name prints
that attribute, e.g. 'a.download@href'.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.client.FetchReplay(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if page.Truncated {
				slog.Warn("capture truncated", slog.Int("bytes", len(page.Body)))
			}

			res, err := c.extract.Extract(page.Body, page.ContentType, args[2], mode, maxResults)
			if err != nil {
				return err
			}
			for _, msg := range res.Errors {
				slog.Warn("extract error", slog.String("error", msg))
			}
			for _, v := range res.Values {
				if err := c.printJSON(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "css, xpath, regex or jq (default: from content type)")
	cmd.Flags().IntVar(&maxResults, "max", 0, "maximum values to print (0: all)")
	return cmd
}

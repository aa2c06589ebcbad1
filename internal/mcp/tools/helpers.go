package tools

import (
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/archivestream-mcp/internal/shape"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/jsoncompact"
)

// MIME type constant.
const MimeJSON = "application/json"

// maxJQResults caps the values a jq filter may produce.
const maxJQResults = 500

// printer formats counts in summaries ("1,204 snapshots").
var printer = message.NewPrinter(language.English)

// ViewOptions selects how a result is presented to the model.
type ViewOptions struct {
	JQ         string
	SchemaOnly bool
	Full       bool
	MaxResults int
}

// View is a presented result plus notes on what was done to it.
type View struct {
	Data        any
	Compacted   bool
	JQErrors    []string
	JQTruncated bool
	Hint        string
}

// PresentRecord renders a single archive record.
func (d *Deps) PresentRecord(rec client.Record, opts ViewOptions) (*View, error) {
	if opts.SchemaOnly {
		return schemaView(rec)
	}
	v, err := rec.Value()
	if err != nil {
		return nil, errDecode(err)
	}
	return d.present(v, opts)
}

// PresentRecords renders a list result. Schema inference treats each element
// as one sample, so the schema describes a single item.
func (d *Deps) PresentRecords(recs []client.Record, opts ViewOptions) (*View, error) {
	if opts.SchemaOnly {
		view, err := schemaView(recs...)
		if err == nil {
			view.Hint = "Schema of one result item, merged over all items."
		}
		return view, err
	}
	v, err := client.Records(recs).Value()
	if err != nil {
		return nil, errDecode(err)
	}
	return d.present(v, opts)
}

func (d *Deps) present(v any, opts ViewOptions) (*View, error) {
	view := &View{Data: v}

	if opts.JQ != "" {
		limit := opts.MaxResults
		if limit <= 0 {
			limit = maxJQResults
		}
		res, err := d.Query.Run(v, opts.JQ, limit)
		if err != nil {
			return nil, ErrInvalidInput(err.Error())
		}
		view.Data = res.Values
		view.JQErrors = res.Errors
		view.JQTruncated = res.Truncated
		if res.Truncated {
			view.Hint = printer.Sprintf("jq output stopped at %d values. Narrow the expression to see the rest.", limit)
		}
	}

	if !opts.Full {
		view.Data, view.Compacted = jsoncompact.Fit(view.Data, d.Config.CompactOptions())
		if view.Compacted && view.Hint == "" {
			view.Hint = "Result was compacted. Narrow it with jq, or set full=true."
		}
	}
	return view, nil
}

func schemaView(recs ...client.Record) (*View, error) {
	inferred, err := shape.InferRecords(recs...)
	if err != nil {
		return nil, &CodedError{Code: ErrCodeDecodeError, Message: "inferring schema", Cause: err}
	}
	data, err := ToAny(inferred)
	if err != nil {
		return nil, err
	}
	return &View{Data: data}, nil
}

// ToAny round-trips v through JSON so it can sit in an `any` output field.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decoding output: %w", err)
	}
	return out, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, one)
	}
	return printer.Sprintf("%d %s", n, many)
}

// summaryResult returns a one-line human summary as the text content and the
// structured output as a JSON second block.
func summaryResult(text string, data any) *sdkmcp.CallToolResult {
	content := []sdkmcp.Content{
		&sdkmcp.TextContent{Text: text},
	}
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			content = append(content, &sdkmcp.TextContent{Text: string(b)})
		}
	}
	return &sdkmcp.CallToolResult{Content: content}
}

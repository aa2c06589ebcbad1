// Package mcpsrv provides an extensible MCP server for an ArchiveStream
// web archive.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin archive tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server against the archive named by ARCHIVESTREAM_BASE_URL:
//
//	server, err := mcpsrv.NewServer(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// Or pass a client you built yourself:
//
//	server, err := mcpsrv.NewServer(client.New(client.WithBaseURL("https://archive.example.org")))
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    URL string `json:"url"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Count: 42}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    nil,
//	    mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler),
//	)
//
// Tools that call the archive use [WithDepsTool], which hands the builder the
// server's [Deps].
//
// # Configuration
//
// Configuration is read from the environment (see the README); options
// override it:
//
//	server, err := mcpsrv.NewServer(
//	    nil,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/archivestream-mcp.log"),
//	)
package mcpsrv

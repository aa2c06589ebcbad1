// Package client provides a Go SDK for the ArchiveStream API.
//
// ArchiveStream records snapshots of web pages over time. Its HTTP API
// exposes full-text search, per-URL snapshot listings, point-in-time
// resolution, raw and semantic diffs between two captures, and a complete
// timeline per URL. This SDK maps each of those endpoints onto one method
// that issues a single GET request and returns the decoded JSON body.
//
// # Quick Start
//
// Create a client and search the archive:
//
//	c := client.New()
//	results, err := c.Search(ctx, "privacy policy")
//
// Use custom configuration:
//
//	c := client.New(
//	    client.WithBaseURL("http://archive.internal:3001"),
//	    client.WithTimeout(10*time.Second),
//	)
//
// The base URL is the service root; trailing slashes are stripped and the
// /api/v1 version segment is appended automatically.
//
// # Results
//
// Responses are returned as [Record] values, which hold the JSON exactly as
// the server sent it. Field order and number formatting are preserved and no
// schema is imposed. Decode into a concrete type when you want one:
//
//	rec, err := c.Resolve(ctx, "https://example.com", "20240101000000")
//	res, err := client.As[client.Resolution](rec)
//	fmt.Println(res.ReplayURL)
//
// # Errors
//
// Every failure is one of three types, all usable with errors.As:
//
//	var se *client.ServerError
//	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
//	    // no snapshot for that URL and time
//	}
//
// [TransportError] means no response was received, [ServerError] carries a
// non-2xx status and the raw body, and [DecodeError] means a 2xx body was not
// valid JSON. The client never retries.
//
// # Outside the versioned API
//
// A few routes live at the service root rather than under /api/v1:
// [Client.Health], [Client.GetSnapshot] for a single snapshot by id, and the
// replay pages. [Client.ReplayURL] builds a replay address without a request;
// [Client.FetchReplay] downloads the captured page itself.
//
// # Timestamps
//
// Timestamps are passed to the server untouched. The service itself expects
// the 14-digit YYYYMMDDhhmmss form; [FormatTimestamp] produces it.
package client

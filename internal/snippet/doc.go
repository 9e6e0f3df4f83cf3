// Package snippet provides an HTTP client for the snippet-of-the-day API.
//
// # Overview
//
// The backend exposes one shared "current" snippet. Clients read it with
// GET /snippet and replace it with POST /submit once its countdown has run
// out. This package wraps those calls and the JSON types they exchange.
//
// # Client Usage
//
//	client, err := snippet.NewClient("localhost:8080")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	current, err := client.FetchSnippet(ctx)
//	if err != nil {
//		log.Printf("fetch failed: %v", err)
//	}
//	if current.Valid() {
//		fmt.Println(current.Title())
//	}
//
//	err = client.Submit(ctx, snippet.Submission{Name: "Ada", Code: "print(1)"})
//
// # Request Handling
//
// Every request built by Do:
//   - Resolves the path against the fixed base URL
//   - Sends Content-Type and Accept: application/json, plus User-Agent: snipday/0.1
//   - Lets RequestOptions.Header override any default header
//   - JSON-encodes RequestOptions.Body unless it is already []byte or string
//   - Honors context cancellation and the client timeout (5s by default)
//
// # Error Handling
//
//   - Non-2xx status: *APIError whose message is the response text, or
//     "Something went wrong" when the server sent nothing
//   - Network errors: "execute request: dial tcp: connection refused"
//   - Malformed JSON: "decode response: unexpected end of JSON input"
//
// An empty response body is a valid, empty result rather than a decode
// error. POST /submit answers 201 with no body, for example.
//
// # Validation
//
// The client does not reject snippets missing a name or code. Callers use
// Snippet.Valid to decide whether a fetched snippet is worth showing.
//
// # Design Rationale
//
//   - No caching (the poller decides the refresh cadence)
//   - No retries (the next poll is the recovery path)
//   - Context-aware so in-flight calls stop when the app shuts down
package snippet

package repositories

import "context"

// PageFetcher renders a URL and returns its best-effort text content.
// Implementations own a long-lived rendering resource: it is created
// lazily on first use, shared across all calls in the process, and must
// be released exactly once via Close.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	Close() error
}

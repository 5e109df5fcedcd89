// Package board models the items of the Deals and Work Orders boards: the raw
// records fetched from monday.com and the cleaned entities built from them.
package board

import (
	"context"
	"strings"
)

// Column is one (title, text) pair of a raw board item.
type Column struct {
	Title string
	Text  string
}

// RawRecord is an unprocessed board item. Columns keep the order the API
// returned them in.
type RawRecord struct {
	ID      string
	Name    string
	Columns []Column
}

// Column returns the text of the first column whose title matches title,
// ignoring case and surrounding whitespace. It returns "" when no column
// matches or the matching column is empty.
func (r RawRecord) Column(title string) string {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, c := range r.Columns {
		if strings.ToLower(strings.TrimSpace(c.Title)) == want {
			return c.Text
		}
	}
	return ""
}

// Fetcher returns every raw item of a board.
type Fetcher interface {
	FetchRecords(ctx context.Context, boardID string) ([]RawRecord, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, boardID string) ([]RawRecord, error)

func (f FetcherFunc) FetchRecords(ctx context.Context, boardID string) ([]RawRecord, error) {
	return f(ctx, boardID)
}

package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	DefaultMondayURL        = "https://api.monday.com/v2"
	DefaultMondayAPIVersion = "2024-01"
	DefaultItemLimit        = 500
	DefaultFetchTimeout     = 30 * time.Second

	userAgent = "boardsight"
)

const itemsQuery = `
query ($boardId: [ID!]!, $limit: Int!) {
  boards(ids: $boardId) {
    items_page(limit: $limit) {
      items {
        id
        name
        column_values {
          id text value
          column { title type }
        }
      }
    }
  }
}`

// StatusError is returned when monday.com answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("monday.com returned HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError carries the GraphQL errors payload of an otherwise successful
// response.
type APIError struct {
	Errors json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Monday.com API error: %s", string(e.Errors))
}

// MondayOptions configures a MondayClient. Zero values fall back to the
// package defaults.
type MondayOptions struct {
	URL        string
	Token      string
	APIVersion string
	ItemLimit  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// MondayClient fetches board items over the monday.com GraphQL API. Every call
// goes to the network; nothing is cached.
type MondayClient struct {
	url        string
	token      string
	apiVersion string
	itemLimit  int
	httpClient *http.Client
	logger     hclog.Logger
}

// NewMondayClient creates a client from opts.
func NewMondayClient(opts MondayOptions, logger hclog.Logger) *MondayClient {
	if opts.URL == "" {
		opts.URL = DefaultMondayURL
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultMondayAPIVersion
	}
	if opts.ItemLimit <= 0 {
		opts.ItemLimit = DefaultItemLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MondayClient{
		url:        opts.URL,
		token:      opts.Token,
		apiVersion: opts.APIVersion,
		itemLimit:  opts.ItemLimit,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		Boards []struct {
			ItemsPage struct {
				Items []mondayItem `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type mondayItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ColumnValues []struct {
		ID     string  `json:"id"`
		Text   *string `json:"text"`
		Column struct {
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"column"`
	} `json:"column_values"`
}

// FetchRecords returns up to the configured item limit of items from boardID.
// A board that exists but reports no data yields an empty slice.
func (c *MondayClient) FetchRecords(ctx context.Context, boardID string) ([]RawRecord, error) {
	body, err := json.Marshal(graphQLRequest{
		Query: itemsQuery,
		Variables: map[string]any{
			"boardId": []string{boardID},
			"limit":   c.itemLimit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", c.apiVersion)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("fetching board items", "board_id", boardID, "limit", c.itemLimit)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", boardID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read board %s: %w", boardID, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var payload graphQLResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode board %s: %w", boardID, err)
	}
	if len(payload.Errors) > 0 && string(payload.Errors) != "null" {
		return nil, &APIError{Errors: payload.Errors}
	}

	if len(payload.Data.Boards) == 0 {
		c.logger.Warn("board returned no data", "board_id", boardID)
		return []RawRecord{}, nil
	}

	items := payload.Data.Boards[0].ItemsPage.Items
	records := make([]RawRecord, 0, len(items))
	for _, it := range items {
		rec := RawRecord{ID: it.ID, Name: it.Name, Columns: make([]Column, 0, len(it.ColumnValues))}
		for _, cv := range it.ColumnValues {
			col := Column{Title: cv.Column.Title}
			if cv.Text != nil {
				col.Text = *cv.Text
			}
			rec.Columns = append(rec.Columns, col)
		}
		records = append(records, rec)
	}

	c.logger.Info("fetched board items", "board_id", boardID, "items", len(records))
	return records, nil
}

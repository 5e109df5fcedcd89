package config

import (
	"fmt"

	"boardsight/board"
)

// Monday configures access to the monday.com boards
type Monday struct {
	APIToken          string `hcl:"api_token,optional"`
	DealsBoardID      string `hcl:"deals_board_id,optional"`
	WorkOrdersBoardID string `hcl:"work_orders_board_id,optional"`
	URL               string `hcl:"url,optional"`
	APIVersion        string `hcl:"api_version,optional"`
	ItemLimit         int    `hcl:"item_limit,optional"`
	TimeoutSeconds    int    `hcl:"timeout_seconds,optional"`
}

func (m *Monday) Defaults() {
	if m.URL == "" {
		m.URL = board.DefaultMondayURL
	}
	if m.APIVersion == "" {
		m.APIVersion = board.DefaultMondayAPIVersion
	}
	if m.ItemLimit == 0 {
		m.ItemLimit = board.DefaultItemLimit
	}
	if m.TimeoutSeconds == 0 {
		m.TimeoutSeconds = int(board.DefaultFetchTimeout.Seconds())
	}
}

func (m *Monday) Validate() error {
	if m.ItemLimit < 1 {
		return fmt.Errorf("monday: item_limit must be at least 1, got %d", m.ItemLimit)
	}
	if m.TimeoutSeconds < 1 {
		return fmt.Errorf("monday: timeout_seconds must be at least 1, got %d", m.TimeoutSeconds)
	}
	return nil
}

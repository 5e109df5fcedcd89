package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"boardsight/board"
	"boardsight/normalize"
)

const (
	dealsBoardLabel = "Deals Pipeline"
	topDealsCount   = 5
)

// SectorDeals is one entry of the deals sector breakdown.
type SectorDeals struct {
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
	ValueCount int     `json:"value_count"`
}

// OwnerDeals is one entry of the owner breakdown.
type OwnerDeals struct {
	Owner     string  `json:"-"`
	DealCount int     `json:"deal_count"`
	Value     float64 `json:"value"`
}

// OwnerBreakdown is ordered by deal count, highest first. It serializes as a
// JSON object keyed by owner code in that order.
type OwnerBreakdown []OwnerDeals

func (o OwnerBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Owner)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TopDeal is a row of the top deals by value.
type TopDeal struct {
	Name   *string `json:"deal_name"`
	Value  float64 `json:"value"`
	Stage  *string `json:"stage"`
	Sector *string `json:"sector"`
	Status *string `json:"status"`
}

// DealsQuality summarises data gaps across the deals in scope.
type DealsQuality struct {
	ValueCoverage     string `json:"value_coverage"`
	MissingCloseDates int    `json:"missing_close_dates"`
	TotalQualityFlags int    `json:"total_quality_flags"`
}

// DealsSummary is the result of querying the Deals board.
type DealsSummary struct {
	Board              string                 `json:"board"`
	FiltersApplied     map[string]string      `json:"filters_applied"`
	TotalItems         int                    `json:"total_items"`
	DealsWithValue     int                    `json:"deals_with_value"`
	TotalPipelineValue float64                `json:"total_pipeline_value_inr"`
	OpenDeals          int                    `json:"open_deals"`
	ClosedWon          int                    `json:"closed_won"`
	ClosedLost         int                    `json:"closed_lost"`
	StageBreakdown     map[string]int         `json:"stage_breakdown"`
	SectorBreakdown    map[string]SectorDeals `json:"sector_breakdown"`
	OwnerBreakdown     OwnerBreakdown         `json:"owner_breakdown"`
	TopDeals           []TopDeal              `json:"top_5_deals_by_value"`
	Quality            DealsQuality           `json:"data_quality_notes"`
	RawItems           []board.Deal           `json:"raw_items,omitempty"`
}

func (s DealsSummary) ItemCount() int   { return s.TotalItems }
func (s DealsSummary) DataQuality() any { return s.Quality }

func (s DealsSummary) ForContext(limit int) any {
	s.RawItems = nil
	s.TopDeals = capItems(s.TopDeals, limit)
	return s
}

// Deals summarises a filtered list of deals. filters is echoed back so the
// model can see what scope the numbers cover.
func Deals(items []board.Deal, filters map[string]string) DealsSummary {
	if filters == nil {
		filters = map[string]string{}
	}
	s := DealsSummary{
		Board:           dealsBoardLabel,
		FiltersApplied:  filters,
		TotalItems:      len(items),
		StageBreakdown:  map[string]int{},
		SectorBreakdown: map[string]SectorDeals{},
		OwnerBreakdown:  OwnerBreakdown{},
		TopDeals:        []TopDeal{},
		RawItems:        items,
	}

	var total float64
	var valued []board.Deal
	owners := map[string]int{}

	for _, d := range items {
		if d.Value != nil {
			valued = append(valued, d)
			total += *d.Value
		}

		switch d.Status {
		case normalize.StatusOpen:
			s.OpenDeals++
		case normalize.StatusClosedWon:
			s.ClosedWon++
		case normalize.StatusClosedLost:
			s.ClosedLost++
		}

		s.StageBreakdown[bucket(d.Stage)]++

		sec := s.SectorBreakdown[bucket(d.Sector)]
		sec.Count++
		if d.Value != nil {
			sec.Value += *d.Value
			sec.ValueCount++
		}
		s.SectorBreakdown[bucket(d.Sector)] = sec

		owner := bucket(d.OwnerCode)
		idx, ok := owners[owner]
		if !ok {
			idx = len(s.OwnerBreakdown)
			owners[owner] = idx
			s.OwnerBreakdown = append(s.OwnerBreakdown, OwnerDeals{Owner: owner})
		}
		s.OwnerBreakdown[idx].DealCount++
		if d.Value != nil {
			s.OwnerBreakdown[idx].Value += *d.Value
		}

		if d.CloseDate == "" && d.TentativeCloseDate == "" {
			s.Quality.MissingCloseDates++
		}
		s.Quality.TotalQualityFlags += len(d.Caveats)
	}

	for k, sec := range s.SectorBreakdown {
		sec.Value = round2(sec.Value)
		s.SectorBreakdown[k] = sec
	}
	for i := range s.OwnerBreakdown {
		s.OwnerBreakdown[i].Value = round2(s.OwnerBreakdown[i].Value)
	}
	sort.SliceStable(s.OwnerBreakdown, func(i, j int) bool {
		return s.OwnerBreakdown[i].DealCount > s.OwnerBreakdown[j].DealCount
	})

	sort.SliceStable(valued, func(i, j int) bool {
		return *valued[i].Value > *valued[j].Value
	})
	for _, d := range capItems(valued, topDealsCount) {
		s.TopDeals = append(s.TopDeals, TopDeal{
			Name:   nullable(d.Name),
			Value:  *d.Value,
			Stage:  nullable(d.Stage),
			Sector: nullable(d.Sector),
			Status: nullable(d.Status),
		})
	}

	s.DealsWithValue = len(valued)
	s.TotalPipelineValue = round2(total)
	s.Quality.ValueCoverage = fmt.Sprintf("%s deals have value data", coverage(len(valued), len(items)))
	return s
}

package summary

import "boardsight/board"

const (
	workOrdersBoardLabel = "Work Orders Tracker"

	// Collection data is flagged as sparse below this share of work orders.
	sparseCollectionRatio = 0.1
)

// SectorWorkOrders is one entry of the work orders sector breakdown.
type SectorWorkOrders struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
	Billed float64 `json:"billed"`
}

// WorkOrderCoverage reports, per money field, how many work orders carry it.
type WorkOrderCoverage struct {
	Amount     string `json:"amount"`
	Billing    string `json:"billing"`
	Collection string `json:"collection"`
}

// WorkOrdersQuality summarises data gaps across the work orders in scope.
type WorkOrdersQuality struct {
	TotalQualityFlags    int  `json:"total_quality_flags"`
	CollectionDataSparse bool `json:"collection_data_sparse"`
}

// WorkOrdersSummary is the result of querying the Work Orders board.
type WorkOrdersSummary struct {
	Board                    string                      `json:"board"`
	FiltersApplied           map[string]string           `json:"filters_applied"`
	TotalItems               int                         `json:"total_items"`
	TotalContractValue       float64                     `json:"total_contract_value_inr"`
	TotalBilledValue         float64                     `json:"total_billed_value_inr"`
	TotalCollected           float64                     `json:"total_collected_inr"`
	Coverage                 WorkOrderCoverage           `json:"coverage"`
	ExecutionStatusBreakdown map[string]int              `json:"execution_status_breakdown"`
	SectorBreakdown          map[string]SectorWorkOrders `json:"sector_breakdown"`
	WorkTypeBreakdown        map[string]int              `json:"work_type_breakdown"`
	Quality                  WorkOrdersQuality           `json:"data_quality_notes"`
	RawItems                 []board.WorkOrder           `json:"raw_items,omitempty"`
}

func (s WorkOrdersSummary) ItemCount() int   { return s.TotalItems }
func (s WorkOrdersSummary) DataQuality() any { return s.Quality }

func (s WorkOrdersSummary) ForContext(limit int) any {
	s.RawItems = nil
	return s
}

// WorkOrders summarises a filtered list of work orders. Each money total only
// sums the orders where that field is present.
func WorkOrders(items []board.WorkOrder, filters map[string]string) WorkOrdersSummary {
	if filters == nil {
		filters = map[string]string{}
	}
	s := WorkOrdersSummary{
		Board:                    workOrdersBoardLabel,
		FiltersApplied:           filters,
		TotalItems:               len(items),
		ExecutionStatusBreakdown: map[string]int{},
		SectorBreakdown:          map[string]SectorWorkOrders{},
		WorkTypeBreakdown:        map[string]int{},
		RawItems:                 items,
	}

	var withAmount, withBilled, withCollected int
	var amount, billed, collected float64

	for _, w := range items {
		sec := s.SectorBreakdown[bucket(w.Sector)]
		sec.Count++
		if w.Amount != nil {
			withAmount++
			amount += *w.Amount
			sec.Amount += *w.Amount
		}
		if w.BilledValue != nil {
			withBilled++
			billed += *w.BilledValue
			sec.Billed += *w.BilledValue
		}
		if w.CollectedAmount != nil {
			withCollected++
			collected += *w.CollectedAmount
		}
		s.SectorBreakdown[bucket(w.Sector)] = sec

		s.ExecutionStatusBreakdown[bucket(w.ExecutionStatus)]++
		s.WorkTypeBreakdown[bucket(w.NatureOfWork)]++
		s.Quality.TotalQualityFlags += len(w.Caveats)
	}

	for k, sec := range s.SectorBreakdown {
		sec.Amount = round2(sec.Amount)
		sec.Billed = round2(sec.Billed)
		s.SectorBreakdown[k] = sec
	}

	s.TotalContractValue = round2(amount)
	s.TotalBilledValue = round2(billed)
	s.TotalCollected = round2(collected)
	s.Coverage = WorkOrderCoverage{
		Amount:     coverage(withAmount, len(items)),
		Billing:    coverage(withBilled, len(items)),
		Collection: coverage(withCollected, len(items)),
	}
	s.Quality.CollectionDataSparse = float64(withCollected) < float64(len(items))*sparseCollectionRatio
	return s
}

package summary

import (
	"strings"

	"boardsight/board"
	"boardsight/normalize"
)

// AnalysisType selects the cross-board correlation to run.
type AnalysisType string

const (
	RevenueVsBilled     AnalysisType = "revenue_vs_billed"
	PipelineToExecution AnalysisType = "pipeline_to_execution"
	SectorOverview      AnalysisType = "sector_overview"
)

// AnalysisTypes lists the supported analyses in declaration order.
var AnalysisTypes = []AnalysisType{RevenueVsBilled, PipelineToExecution, SectorOverview}

// ParseAnalysisType resolves raw to an AnalysisType. Missing or unrecognised
// values select SectorOverview.
func ParseAnalysisType(raw string) AnalysisType {
	switch t := AnalysisType(strings.ToLower(strings.TrimSpace(raw))); t {
	case RevenueVsBilled, PipelineToExecution:
		return t
	default:
		return SectorOverview
	}
}

// RevenueRow compares a deal's pipeline value with what has been billed on its
// work orders.
type RevenueRow struct {
	DealName       *string  `json:"deal_name"`
	Sector         *string  `json:"sector"`
	PipelineValue  *float64 `json:"pipeline_value"`
	BilledValue    *float64 `json:"billed_value"`
	WorkOrderCount int      `json:"work_order_count"`
}

// RevenueVsBilledResult is the revenue_vs_billed analysis.
type RevenueVsBilledResult struct {
	AnalysisType        AnalysisType `json:"analysis_type"`
	TotalDealsAnalyzed  int          `json:"total_deals_analyzed"`
	TotalWOAnalyzed     int          `json:"total_wo_analyzed"`
	DealsWithWorkOrders int          `json:"deals_with_work_orders"`
	Items               []RevenueRow `json:"items"`
}

func (r RevenueVsBilledResult) ItemCount() int   { return r.TotalDealsAnalyzed }
func (r RevenueVsBilledResult) DataQuality() any { return map[string]any{} }

func (r RevenueVsBilledResult) ForContext(limit int) any {
	r.Items = capItems(r.Items, limit)
	return r
}

// ExecutionRow reports whether a deal has turned into work orders.
type ExecutionRow struct {
	DealName          *string  `json:"deal_name"`
	DealStage         *string  `json:"deal_stage"`
	DealStatus        *string  `json:"deal_status"`
	Sector            *string  `json:"sector"`
	HasWorkOrder      bool     `json:"has_work_order"`
	WorkOrderStatuses []string `json:"work_order_statuses"`
}

// PipelineToExecutionResult is the pipeline_to_execution analysis.
type PipelineToExecutionResult struct {
	AnalysisType       AnalysisType   `json:"analysis_type"`
	TotalDeals         int            `json:"total_deals"`
	DealsConvertedToWO int            `json:"deals_converted_to_wo"`
	Items              []ExecutionRow `json:"items"`
}

func (r PipelineToExecutionResult) ItemCount() int   { return r.TotalDeals }
func (r PipelineToExecutionResult) DataQuality() any { return map[string]any{} }

func (r PipelineToExecutionResult) ForContext(limit int) any {
	r.Items = capItems(r.Items, limit)
	return r
}

// SectorTotals combines both boards for one sector.
type SectorTotals struct {
	PipelineDeals int     `json:"pipeline_deals"`
	PipelineValue float64 `json:"pipeline_value"`
	WorkOrders    int     `json:"work_orders"`
	BilledValue   float64 `json:"billed_value"`
	OpenDeals     int     `json:"open_deals"`
}

// SectorOverviewResult is the sector_overview analysis.
type SectorOverviewResult struct {
	AnalysisType    AnalysisType            `json:"analysis_type"`
	TotalDeals      int                     `json:"total_deals"`
	TotalWorkOrders int                     `json:"total_work_orders"`
	Sectors         map[string]SectorTotals `json:"sectors"`
}

// ItemCount prefers the deal count and falls back to work orders when no
// deals are in scope.
func (r SectorOverviewResult) ItemCount() int {
	if r.TotalDeals != 0 {
		return r.TotalDeals
	}
	return r.TotalWorkOrders
}

func (r SectorOverviewResult) DataQuality() any       { return map[string]any{} }
func (r SectorOverviewResult) ForContext(limit int) any { return r }

// CrossBoard correlates deals with work orders by deal name.
func CrossBoard(deals []board.Deal, workOrders []board.WorkOrder, analysis AnalysisType) Result {
	switch analysis {
	case RevenueVsBilled:
		return revenueVsBilled(deals, workOrders)
	case PipelineToExecution:
		return pipelineToExecution(deals, workOrders)
	default:
		return sectorOverview(deals, workOrders)
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// indexWorkOrders groups work orders by normalized deal name. Orders without a
// name cannot be matched and are left out.
func indexWorkOrders(workOrders []board.WorkOrder) map[string][]board.WorkOrder {
	index := make(map[string][]board.WorkOrder)
	for _, w := range workOrders {
		if key := nameKey(w.DealName); key != "" {
			index[key] = append(index[key], w)
		}
	}
	return index
}

func revenueVsBilled(deals []board.Deal, workOrders []board.WorkOrder) RevenueVsBilledResult {
	index := indexWorkOrders(workOrders)
	r := RevenueVsBilledResult{
		AnalysisType:       RevenueVsBilled,
		TotalDealsAnalyzed: len(deals),
		TotalWOAnalyzed:    len(workOrders),
		Items:              []RevenueRow{},
	}

	for _, d := range deals {
		matched := index[nameKey(d.Name)]
		var billed float64
		for _, w := range matched {
			if w.BilledValue != nil {
				billed += *w.BilledValue
			}
		}
		if d.Value == nil && billed <= 0 {
			continue
		}

		row := RevenueRow{
			DealName:       nullable(d.Name),
			Sector:         nullable(d.Sector),
			PipelineValue:  d.Value,
			WorkOrderCount: len(matched),
		}
		if billed != 0 {
			b := round2(billed)
			row.BilledValue = &b
		}
		if row.WorkOrderCount > 0 {
			r.DealsWithWorkOrders++
		}
		r.Items = append(r.Items, row)
	}
	return r
}

func pipelineToExecution(deals []board.Deal, workOrders []board.WorkOrder) PipelineToExecutionResult {
	index := indexWorkOrders(workOrders)
	r := PipelineToExecutionResult{
		AnalysisType: PipelineToExecution,
		TotalDeals:   len(deals),
		Items:        make([]ExecutionRow, 0, len(deals)),
	}

	for _, d := range deals {
		matched := index[nameKey(d.Name)]
		statuses := make([]string, 0, len(matched))
		for _, w := range matched {
			statuses = append(statuses, w.ExecutionStatus)
		}
		row := ExecutionRow{
			DealName:          nullable(d.Name),
			DealStage:         nullable(d.Stage),
			DealStatus:        nullable(d.Status),
			Sector:            nullable(d.Sector),
			HasWorkOrder:      len(matched) > 0,
			WorkOrderStatuses: statuses,
		}
		if row.HasWorkOrder {
			r.DealsConvertedToWO++
		}
		r.Items = append(r.Items, row)
	}
	return r
}

func sectorOverview(deals []board.Deal, workOrders []board.WorkOrder) SectorOverviewResult {
	sectors := make(map[string]SectorTotals)

	for _, d := range deals {
		key := bucket(d.Sector)
		t := sectors[key]
		t.PipelineDeals++
		if d.Value != nil {
			t.PipelineValue += *d.Value
		}
		if d.Status == normalize.StatusOpen {
			t.OpenDeals++
		}
		sectors[key] = t
	}

	for _, w := range workOrders {
		key := bucket(w.Sector)
		t := sectors[key]
		t.WorkOrders++
		if w.BilledValue != nil {
			t.BilledValue += *w.BilledValue
		}
		sectors[key] = t
	}

	for k, t := range sectors {
		t.PipelineValue = round2(t.PipelineValue)
		t.BilledValue = round2(t.BilledValue)
		sectors[k] = t
	}

	return SectorOverviewResult{
		AnalysisType:    SectorOverview,
		TotalDeals:      len(deals),
		TotalWorkOrders: len(workOrders),
		Sectors:         sectors,
	}
}

package aitools

import (
	"context"
	"fmt"

	"boardsight/board"
	"boardsight/summary"
)

// BoardIDs names the two monday.com boards the tools read from.
type BoardIDs struct {
	Deals      string
	WorkOrders string
}

// boards fetches and cleans entities for the tools. It is shared read-only.
type boards struct {
	fetcher board.Fetcher
	ids     BoardIDs
}

func (b *boards) deals(ctx context.Context) ([]board.Deal, error) {
	raw, err := b.fetcher.FetchRecords(ctx, b.ids.Deals)
	if err != nil {
		return nil, fmt.Errorf("fetch deals board: %w", err)
	}
	return board.CleanDeals(raw), nil
}

func (b *boards) workOrders(ctx context.Context) ([]board.WorkOrder, error) {
	raw, err := b.fetcher.FetchRecords(ctx, b.ids.WorkOrders)
	if err != nil {
		return nil, fmt.Errorf("fetch work orders board: %w", err)
	}
	return board.CleanWorkOrders(raw), nil
}

// DealsTool queries the Deals Pipeline board.
type DealsTool struct {
	boards *boards
}

func (t *DealsTool) ToolName() ToolName {
	return QueryDealsBoard
}

func (t *DealsTool) ToolDescription() string {
	return "Fetch live deal and pipeline data from Monday.com. " +
		"Use for: pipeline health, revenue totals, deal stage breakdown, " +
		"sector performance, owner rankings, closure probability analysis."
}

func (t *DealsTool) ToolPayloadSchema() Schema {
	return Schema{
		Type: TypeObject,
		Properties: PropertyMap{
			string(FilterSector): {
				Type:        TypeString,
				Description: "Sector filter e.g. Mining, Powerline. Omit for all.",
			},
			string(FilterDealStage): {
				Type:        TypeString,
				Description: "Partial match on deal stage. Omit for all.",
			},
			string(FilterDealStatus): {
				Type:        TypeString,
				Description: "Open | Closed Won | Closed Lost | On Hold. Omit for all.",
			},
			string(FilterOwnerCode): {
				Type:        TypeString,
				Description: "Owner code e.g. OWNER_001. Omit for all.",
			},
		},
	}
}

func (t *DealsTool) Call(ctx context.Context, args map[string]any) (summary.Result, error) {
	deals, err := t.boards.deals(ctx)
	if err != nil {
		return nil, err
	}
	f := ParseFilter(args, dealFilterKeys...)
	return summary.Deals(f.Deals(deals), f.Applied()), nil
}

// WorkOrdersTool queries the Work Orders Tracker board.
type WorkOrdersTool struct {
	boards *boards
}

func (t *WorkOrdersTool) ToolName() ToolName {
	return QueryWorkOrdersBoard
}

func (t *WorkOrdersTool) ToolDescription() string {
	return "Fetch live work order data from Monday.com. " +
		"Use for: execution status, billing amounts, collection tracking, " +
		"work type breakdown, delivery timelines."
}

func (t *WorkOrdersTool) ToolPayloadSchema() Schema {
	return Schema{
		Type: TypeObject,
		Properties: PropertyMap{
			string(FilterSector): {
				Type:        TypeString,
				Description: "Sector filter. Omit for all.",
			},
			string(FilterExecutionStatus): {
				Type:        TypeString,
				Description: "Completed | In Progress | Not Started | On Hold. Omit for all.",
			},
			string(FilterNatureOfWork): {
				Type:        TypeString,
				Description: "One time Project | Monthly Contract | Proof of Concept. Omit for all.",
			},
		},
	}
}

func (t *WorkOrdersTool) Call(ctx context.Context, args map[string]any) (summary.Result, error) {
	workOrders, err := t.boards.workOrders(ctx)
	if err != nil {
		return nil, err
	}
	f := ParseFilter(args, workOrderFilterKeys...)
	return summary.WorkOrders(f.WorkOrders(workOrders), f.Applied()), nil
}

// CrossBoardTool correlates both boards by deal name.
type CrossBoardTool struct {
	boards *boards
}

func (t *CrossBoardTool) ToolName() ToolName {
	return CrossBoardAnalysis
}

func (t *CrossBoardTool) ToolDescription() string {
	return "Query both boards and correlate data by deal name. " +
		"Use for: revenue vs billed comparison, pipeline-to-execution tracking, " +
		"full sector overview across deals and work orders."
}

func (t *CrossBoardTool) ToolPayloadSchema() Schema {
	types := make([]string, 0, len(summary.AnalysisTypes))
	for _, a := range summary.AnalysisTypes {
		types = append(types, string(a))
	}
	return Schema{
		Type: TypeObject,
		Properties: PropertyMap{
			"analysis_type": {
				Type:        TypeString,
				Description: "The type of cross-board analysis to perform.",
				Enum:        types,
			},
			string(FilterSector): {
				Type:        TypeString,
				Description: "Optional sector scope.",
			},
		},
		Required: []string{"analysis_type"},
	}
}

func (t *CrossBoardTool) Call(ctx context.Context, args map[string]any) (summary.Result, error) {
	deals, err := t.boards.deals(ctx)
	if err != nil {
		return nil, err
	}
	workOrders, err := t.boards.workOrders(ctx)
	if err != nil {
		return nil, err
	}

	f := ParseFilter(args, FilterSector)
	analysis, _ := args["analysis_type"].(string)
	return summary.CrossBoard(f.Deals(deals), f.WorkOrders(workOrders), summary.ParseAnalysisType(analysis)), nil
}

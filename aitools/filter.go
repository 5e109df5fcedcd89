package aitools

import (
	"strconv"
	"strings"

	"boardsight/board"
	"boardsight/normalize"
)

// FilterKey is a tool argument that narrows the items of a board.
type FilterKey string

const (
	FilterSector          FilterKey = "sector"
	FilterDealStage       FilterKey = "deal_stage"
	FilterDealStatus      FilterKey = "deal_status"
	FilterOwnerCode       FilterKey = "owner_code"
	FilterExecutionStatus FilterKey = "execution_status"
	FilterNatureOfWork    FilterKey = "nature_of_work"
)

var (
	dealFilterKeys      = []FilterKey{FilterSector, FilterDealStage, FilterDealStatus, FilterOwnerCode}
	workOrderFilterKeys = []FilterKey{FilterSector, FilterExecutionStatus, FilterNatureOfWork}
)

// Values the model sometimes sends to mean "no filter".
var inactiveFilterValues = map[string]struct{}{
	"":          {},
	"all":       {},
	"any":       {},
	"none":      {},
	"n/a":       {},
	"*":         {},
	"null":      {},
	"undefined": {},
}

// IsActive reports whether a filter value actually narrows the result.
func IsActive(value string) bool {
	_, inactive := inactiveFilterValues[strings.ToLower(strings.TrimSpace(value))]
	return !inactive
}

// Filter holds the active filter values of a tool call. Every entry must match
// for an item to be kept, so the order entries are applied in is irrelevant.
type Filter map[FilterKey]string

// ParseFilter extracts the active values for keys from tool arguments.
// Non-string scalars are stringified; anything else is ignored.
func ParseFilter(args map[string]any, keys ...FilterKey) Filter {
	f := Filter{}
	for _, k := range keys {
		raw, ok := args[string(k)]
		if !ok {
			continue
		}
		var value string
		switch v := raw.(type) {
		case string:
			value = v
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if !v {
				continue
			}
			value = strconv.FormatBool(v)
		default:
			continue
		}
		if IsActive(value) {
			f[k] = strings.TrimSpace(value)
		}
	}
	return f
}

// Applied returns the filter as plain strings for echoing back in results.
func (f Filter) Applied() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[string(k)] = v
	}
	return out
}

// Deals keeps the deals matching every active filter.
func (f Filter) Deals(items []board.Deal) []board.Deal {
	out := make([]board.Deal, 0, len(items))
	for _, d := range items {
		if f.matchDeal(d) {
			out = append(out, d)
		}
	}
	return out
}

// WorkOrders keeps the work orders matching every active filter.
func (f Filter) WorkOrders(items []board.WorkOrder) []board.WorkOrder {
	out := make([]board.WorkOrder, 0, len(items))
	for _, w := range items {
		if f.matchWorkOrder(w) {
			out = append(out, w)
		}
	}
	return out
}

func (f Filter) matchDeal(d board.Deal) bool {
	for k, v := range f {
		var ok bool
		switch k {
		case FilterSector:
			ok = sameSector(d.Sector, v)
		case FilterDealStage:
			ok = containsFold(d.Stage, v)
		case FilterDealStatus:
			ok = containsFold(d.Status, v)
		case FilterOwnerCode:
			ok = containsFold(d.OwnerCode, v)
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

func (f Filter) matchWorkOrder(w board.WorkOrder) bool {
	for k, v := range f {
		var ok bool
		switch k {
		case FilterSector:
			ok = sameSector(w.Sector, v)
		case FilterExecutionStatus:
			ok = containsFold(w.ExecutionStatus, v)
		case FilterNatureOfWork:
			ok = containsFold(w.NatureOfWork, v)
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

// sameSector compares both sides after canonicalization, so "power line"
// matches an item labelled Powerline.
func sameSector(itemSector, want string) bool {
	return normalize.Sector(itemSector) == normalize.Sector(want)
}

func containsFold(field, keyword string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(keyword))
}

package aitools_test

import (
	"boardsight/aitools"
	"boardsight/board"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Filter", func() {
	deals := []board.Deal{
		{Name: "Alpha", Sector: "Mining", Stage: "B. Proposal Sent", Status: "Open", OwnerCode: "OWNER_001"},
		{Name: "Beta", Sector: "Powerline", Stage: "E. Negotiations", Status: "Open", OwnerCode: "OWNER_002"},
		{Name: "Gamma", Sector: "Mining", Stage: "E. Negotiations", Status: "Closed Won", OwnerCode: "OWNER_001"},
		{Name: "Delta", Stage: "A. Lead"},
	}

	names := func(items []board.Deal) []string {
		out := make([]string, 0, len(items))
		for _, d := range items {
			out = append(out, d.Name)
		}
		return out
	}

	Describe("IsActive", func() {
		DescribeTable("sentinels",
			func(value string, active bool) {
				Expect(aitools.IsActive(value)).To(Equal(active))
			},
			Entry("empty", "", false),
			Entry("all", "All", false),
			Entry("any", " any ", false),
			Entry("none", "NONE", false),
			Entry("n/a", "N/A", false),
			Entry("star", "*", false),
			Entry("null", "null", false),
			Entry("undefined", "undefined", false),
			Entry("a real value", "Mining", true),
		)
	})

	Describe("ParseFilter", func() {
		It("keeps only known keys with active values", func() {
			f := aitools.ParseFilter(map[string]any{
				"sector":      " Mining ",
				"deal_status": "all",
				"foo":         "bar",
			}, aitools.FilterSector, aitools.FilterDealStatus)
			Expect(f).To(Equal(aitools.Filter{aitools.FilterSector: "Mining"}))
		})

		It("stringifies scalars and ignores structured values", func() {
			f := aitools.ParseFilter(map[string]any{
				"owner_code":  float64(7),
				"deal_stage":  []any{"a"},
				"deal_status": false,
			}, aitools.FilterOwnerCode, aitools.FilterDealStage, aitools.FilterDealStatus)
			Expect(f).To(Equal(aitools.Filter{aitools.FilterOwnerCode: "7"}))
		})

		It("echoes applied filters as plain strings", func() {
			f := aitools.Filter{aitools.FilterSector: "Mining"}
			Expect(f.Applied()).To(Equal(map[string]string{"sector": "Mining"}))
		})
	})

	Describe("Deals", func() {
		It("matches sectors after canonicalization", func() {
			f := aitools.Filter{aitools.FilterSector: "power line"}
			Expect(names(f.Deals(deals))).To(Equal([]string{"Beta"}))
		})

		It("matches stage keywords as case-insensitive substrings", func() {
			f := aitools.Filter{aitools.FilterDealStage: "negotiation"}
			Expect(names(f.Deals(deals))).To(Equal([]string{"Beta", "Gamma"}))
		})

		It("requires every filter to match", func() {
			f := aitools.Filter{
				aitools.FilterSector:     "mining",
				aitools.FilterDealStatus: "open",
				aitools.FilterOwnerCode:  "owner_001",
			}
			Expect(names(f.Deals(deals))).To(Equal([]string{"Alpha"}))
		})

		It("excludes items missing the filtered field", func() {
			f := aitools.Filter{aitools.FilterDealStatus: "open"}
			Expect(names(f.Deals(deals))).NotTo(ContainElement("Delta"))
		})

		It("keeps everything with no active filters", func() {
			Expect(aitools.Filter{}.Deals(deals)).To(HaveLen(len(deals)))
		})

		It("does not depend on the order filters are given in", func() {
			a := aitools.ParseFilter(map[string]any{"sector": "Mining", "deal_stage": "E."},
				aitools.FilterSector, aitools.FilterDealStage)
			b := aitools.ParseFilter(map[string]any{"deal_stage": "E.", "sector": "Mining"},
				aitools.FilterDealStage, aitools.FilterSector)
			Expect(names(a.Deals(deals))).To(Equal(names(b.Deals(deals))))
			Expect(names(a.Deals(a.Deals(deals)))).To(Equal(names(a.Deals(deals))))
		})
	})

	Describe("WorkOrders", func() {
		workOrders := []board.WorkOrder{
			{DealName: "Alpha", Sector: "Mining", ExecutionStatus: "Completed", NatureOfWork: "One time Project"},
			{DealName: "Beta", Sector: "Powerline", ExecutionStatus: "In Progress", NatureOfWork: "Monthly Contract"},
		}

		It("filters on execution status and nature of work", func() {
			f := aitools.Filter{
				aitools.FilterExecutionStatus: "progress",
				aitools.FilterNatureOfWork:    "monthly",
			}
			out := f.WorkOrders(workOrders)
			Expect(out).To(HaveLen(1))
			Expect(out[0].DealName).To(Equal("Beta"))
		})
	})
})

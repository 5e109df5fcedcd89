package summary_test

import (
	"encoding/json"

	"boardsight/board"
	"boardsight/summary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sampleDeals() []board.Deal {
	return []board.Deal{
		{Name: "Alpha", OwnerCode: "OWNER_2", Status: "Open", Stage: "Proposal", Sector: "Mining", Value: ptr(100.123), CloseDate: "2024-01-01"},
		{Name: "Beta", OwnerCode: "OWNER_1", Status: "Closed Won", Stage: "Won", Sector: "Mining", Value: ptr(50)},
		{Name: "Gamma", OwnerCode: "OWNER_1", Status: "Closed Lost", Sector: "Powerline", Caveats: []board.Caveat{board.CaveatDealValueMissing, board.CaveatCloseDateMissing}},
		{Name: "Delta", OwnerCode: "OWNER_1", Status: "On Hold", Value: ptr(300), TentativeCloseDate: "2024-05-01"},
		{Name: "Eps", Status: "Open", Value: ptr(10)},
		{Name: "Zeta", OwnerCode: "OWNER_3", Value: ptr(20)},
		{Name: "Eta", OwnerCode: "OWNER_3", Value: ptr(5)},
	}
}

var _ = Describe("Deals", func() {
	var s summary.DealsSummary

	BeforeEach(func() {
		s = summary.Deals(sampleDeals(), map[string]string{"sector": "Mining"})
	})

	It("counts everything in scope", func() {
		Expect(s.Board).To(Equal("Deals Pipeline"))
		Expect(s.TotalItems).To(Equal(7))
		Expect(s.DealsWithValue).To(Equal(6))
		Expect(s.DealsWithValue).To(BeNumerically("<=", s.TotalItems))
		Expect(s.TotalPipelineValue).To(Equal(485.12))
		Expect(s.OpenDeals).To(Equal(2))
		Expect(s.ClosedWon).To(Equal(1))
		Expect(s.ClosedLost).To(Equal(1))
		Expect(s.FiltersApplied).To(HaveKeyWithValue("sector", "Mining"))
	})

	It("buckets absent categories as Unknown", func() {
		Expect(s.StageBreakdown).To(HaveKeyWithValue("Unknown", 5))
		Expect(s.SectorBreakdown).To(HaveKeyWithValue("Mining", summary.SectorDeals{Count: 2, Value: 150.12, ValueCount: 2}))
		Expect(s.SectorBreakdown).To(HaveKeyWithValue("Powerline", summary.SectorDeals{Count: 1}))
	})

	It("orders the owner breakdown by deal count with stable ties", func() {
		var owners []string
		var counts []int
		for _, o := range s.OwnerBreakdown {
			owners = append(owners, o.Owner)
			counts = append(counts, o.DealCount)
		}
		Expect(owners).To(Equal([]string{"OWNER_1", "OWNER_3", "OWNER_2", "Unknown"}))
		Expect(counts).To(Equal([]int{3, 2, 1, 1}))
	})

	It("serializes the owner breakdown as an ordered object", func() {
		b, err := json.Marshal(s.OwnerBreakdown)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(`{"OWNER_1":{"deal_count":3,"value":350},"OWNER_3":{"deal_count":2,"value":25},"OWNER_2":{"deal_count":1,"value":100.12},"Unknown":{"deal_count":1,"value":10}}`))
	})

	It("keeps the five most valuable deals", func() {
		Expect(s.TopDeals).To(HaveLen(5))
		Expect(*s.TopDeals[0].Name).To(Equal("Delta"))
		Expect(s.TopDeals[0].Value).To(Equal(300.0))
		Expect(s.TopDeals[0].Sector).To(BeNil())
		Expect(*s.TopDeals[4].Name).To(Equal("Eps"))
	})

	It("reports data quality", func() {
		Expect(s.Quality.ValueCoverage).To(Equal("6/7 deals have value data"))
		Expect(s.Quality.MissingCloseDates).To(Equal(5))
		Expect(s.Quality.TotalQualityFlags).To(Equal(2))
		Expect(s.DataQuality()).To(Equal(s.Quality))
		Expect(s.ItemCount()).To(Equal(7))
	})

	It("drops raw items from the context copy", func() {
		Expect(s.RawItems).To(HaveLen(7))
		b, err := json.Marshal(s.ForContext(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).NotTo(ContainSubstring("raw_items"))
		Expect(string(b)).To(ContainSubstring(`"owner_breakdown":{"OWNER_1"`))
	})

	DescribeTable("caps the top deals to the context item limit",
		func(limit, want int) {
			b, err := json.Marshal(s.ForContext(limit))
			Expect(err).NotTo(HaveOccurred())
			var out struct {
				TopDeals []map[string]any `json:"top_5_deals_by_value"`
			}
			Expect(json.Unmarshal(b, &out)).To(Succeed())
			Expect(out.TopDeals).To(HaveLen(want))
		},
		Entry("limit below five", 2, 2),
		Entry("limit of one", 1, 1),
		Entry("limit above five", 50, 5),
	)

	It("keeps the full top list on the summary itself", func() {
		_ = s.ForContext(1)
		Expect(s.TopDeals).To(HaveLen(5))
	})

	It("handles an empty scope", func() {
		empty := summary.Deals(nil, nil)
		Expect(empty.TotalItems).To(BeZero())
		Expect(empty.Quality.ValueCoverage).To(Equal("0/0 deals have value data"))
		Expect(empty.TopDeals).To(BeEmpty())
	})
})

var _ = Describe("WorkOrders", func() {
	items := []board.WorkOrder{
		{DealName: "Alpha", Sector: "Mining", ExecutionStatus: "Completed", NatureOfWork: "One time Project", Amount: ptr(1000), BilledValue: ptr(400), CollectedAmount: ptr(100)},
		{DealName: "Alpha", Sector: "Mining", ExecutionStatus: "In Progress", Amount: ptr(500), Caveats: []board.Caveat{board.CaveatBilledValueMissing, board.CaveatCollectedAmountMissing}},
		{DealName: "Beta", ExecutionStatus: "Completed", NatureOfWork: "One time Project", BilledValue: ptr(250.556), Caveats: []board.Caveat{board.CaveatAmountMissing, board.CaveatCollectedAmountMissing}},
	}

	It("sums each money field only where present", func() {
		s := summary.WorkOrders(items, nil)
		Expect(s.Board).To(Equal("Work Orders Tracker"))
		Expect(s.TotalItems).To(Equal(3))
		Expect(s.TotalContractValue).To(Equal(1500.0))
		Expect(s.TotalBilledValue).To(Equal(650.56))
		Expect(s.TotalCollected).To(Equal(100.0))
		Expect(s.Coverage).To(Equal(summary.WorkOrderCoverage{Amount: "2/3", Billing: "2/3", Collection: "1/3"}))
	})

	It("breaks down by status, sector and nature of work", func() {
		s := summary.WorkOrders(items, nil)
		Expect(s.ExecutionStatusBreakdown).To(Equal(map[string]int{"Completed": 2, "In Progress": 1}))
		Expect(s.SectorBreakdown).To(HaveKeyWithValue("Mining", summary.SectorWorkOrders{Count: 2, Amount: 1500, Billed: 400}))
		Expect(s.SectorBreakdown).To(HaveKeyWithValue("Unknown", summary.SectorWorkOrders{Count: 1, Billed: 250.56}))
		Expect(s.WorkTypeBreakdown).To(Equal(map[string]int{"One time Project": 2, "Unknown": 1}))
	})

	It("flags sparse collection data below ten percent", func() {
		Expect(summary.WorkOrders(items, nil).Quality.CollectionDataSparse).To(BeFalse())

		var many []board.WorkOrder
		for i := 0; i < 11; i++ {
			many = append(many, board.WorkOrder{})
		}
		many[0].CollectedAmount = ptr(1)
		Expect(summary.WorkOrders(many, nil).Quality.CollectionDataSparse).To(BeTrue())
	})

	It("counts quality flags", func() {
		Expect(summary.WorkOrders(items, nil).Quality.TotalQualityFlags).To(Equal(4))
	})
})

var _ = Describe("CrossBoard", func() {
	deals := []board.Deal{
		{Name: "Alpha ", Sector: "Mining", Status: "Open", Stage: "Proposal", Value: ptr(1000)},
		{Name: "beta", Sector: "Powerline", Status: "Closed Won"},
		{Name: "Gamma", Sector: "Mining", Status: "Open"},
		{Name: "", Value: ptr(5)},
	}
	workOrders := []board.WorkOrder{
		{DealName: " alpha", Sector: "Mining", ExecutionStatus: "Completed", BilledValue: ptr(300)},
		{DealName: "ALPHA", Sector: "Mining", ExecutionStatus: "In Progress", BilledValue: ptr(200)},
		{DealName: "Beta", Sector: "Powerline", ExecutionStatus: "Not Started"},
		{DealName: "Orphan", Sector: "Solar", BilledValue: ptr(50)},
		{DealName: "", BilledValue: ptr(999)},
	}

	It("defaults to sector_overview", func() {
		Expect(summary.ParseAnalysisType("")).To(Equal(summary.SectorOverview))
		Expect(summary.ParseAnalysisType("bogus")).To(Equal(summary.SectorOverview))
		Expect(summary.ParseAnalysisType(" Revenue_vs_Billed ")).To(Equal(summary.RevenueVsBilled))
	})

	Describe("revenue_vs_billed", func() {
		It("sums billed value over exactly the matching work orders", func() {
			r := summary.CrossBoard(deals, workOrders, summary.RevenueVsBilled).(summary.RevenueVsBilledResult)
			Expect(r.TotalDealsAnalyzed).To(Equal(4))
			Expect(r.TotalWOAnalyzed).To(Equal(5))
			Expect(r.Items).To(HaveLen(2))

			alpha := r.Items[0]
			Expect(*alpha.DealName).To(Equal("Alpha "))
			Expect(*alpha.PipelineValue).To(Equal(1000.0))
			Expect(*alpha.BilledValue).To(Equal(500.0))
			Expect(alpha.WorkOrderCount).To(Equal(2))

			unnamed := r.Items[1]
			Expect(unnamed.DealName).To(BeNil())
			Expect(unnamed.BilledValue).To(BeNil())
			Expect(unnamed.WorkOrderCount).To(BeZero())

			Expect(r.DealsWithWorkOrders).To(Equal(1))
			Expect(r.ItemCount()).To(Equal(4))
		})

		It("caps items in the context copy", func() {
			r := summary.CrossBoard(deals, workOrders, summary.RevenueVsBilled)
			trimmed := r.ForContext(1).(summary.RevenueVsBilledResult)
			Expect(trimmed.Items).To(HaveLen(1))
		})
	})

	Describe("pipeline_to_execution", func() {
		It("lists the execution statuses of matched orders", func() {
			r := summary.CrossBoard(deals, workOrders, summary.PipelineToExecution).(summary.PipelineToExecutionResult)
			Expect(r.TotalDeals).To(Equal(4))
			Expect(r.DealsConvertedToWO).To(Equal(2))
			Expect(r.Items[0].HasWorkOrder).To(BeTrue())
			Expect(r.Items[0].WorkOrderStatuses).To(Equal([]string{"Completed", "In Progress"}))
			Expect(r.Items[1].WorkOrderStatuses).To(Equal([]string{"Not Started"}))
			Expect(r.Items[2].HasWorkOrder).To(BeFalse())
			Expect(r.Items[2].WorkOrderStatuses).To(BeEmpty())
		})
	})

	Describe("sector_overview", func() {
		It("folds both boards into one sector map", func() {
			r := summary.CrossBoard(deals, workOrders, summary.SectorOverview).(summary.SectorOverviewResult)
			Expect(r.TotalDeals).To(Equal(4))
			Expect(r.TotalWorkOrders).To(Equal(5))
			Expect(r.Sectors["Mining"]).To(Equal(summary.SectorTotals{PipelineDeals: 2, PipelineValue: 1000, WorkOrders: 2, BilledValue: 500, OpenDeals: 2}))
			Expect(r.Sectors["Solar"]).To(Equal(summary.SectorTotals{WorkOrders: 1, BilledValue: 50}))
			Expect(r.Sectors["Unknown"]).To(Equal(summary.SectorTotals{PipelineDeals: 1, PipelineValue: 5, WorkOrders: 1, BilledValue: 999}))
		})

		It("falls back to the work order count when no deals are in scope", func() {
			r := summary.CrossBoard(nil, workOrders, summary.SectorOverview)
			Expect(r.ItemCount()).To(Equal(5))
		})
	})
})

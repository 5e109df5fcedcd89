package board_test

import (
	"boardsight/board"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RawRecord", func() {
	It("matches column titles case-insensitively", func() {
		r := record("1", "x", "  deal STATUS ", "Open")
		Expect(r.Column("Deal Status")).To(Equal("Open"))
	})

	It("returns the first matching column", func() {
		r := record("1", "x", "Sector", "Mining", "sector", "Solar")
		Expect(r.Column("SECTOR")).To(Equal("Mining"))
	})

	It("returns empty for unknown titles", func() {
		Expect(record("1", "x").Column("Sector")).To(BeEmpty())
	})
})

var _ = Describe("CleanDeal", func() {
	It("maps every column and leaves no caveats on a complete record", func() {
		d := board.CleanDeal(record("42", "Acme Survey",
			"Masked Deal value", "INR 2.5 Cr",
			"Closure Probability", "60%",
			"Close Date (A)", "31/01/2024",
			"Tentative Close Date", "",
			"Created Date", "45292",
			"Sector/service", "power line",
			"Deal Status", "active",
			"Owner code", "OWNER_001",
			"Client Code", "CL_9",
			"Deal Stage", "B. Sales Qualified Leads",
			"Product deal", "Pure Service",
		))

		Expect(d.ID).To(Equal("42"))
		Expect(d.Name).To(Equal("Acme Survey"))
		Expect(*d.Value).To(Equal(25000000.0))
		Expect(*d.ClosureProbability).To(Equal(60.0))
		Expect(d.CloseDate).To(Equal("2024-01-31"))
		Expect(d.TentativeCloseDate).To(BeEmpty())
		Expect(d.CreatedDate).To(Equal("2024-01-01"))
		Expect(d.Sector).To(Equal("Powerline"))
		Expect(d.Status).To(Equal("Open"))
		Expect(d.OwnerCode).To(Equal("OWNER_001"))
		Expect(d.ClientCode).To(Equal("CL_9"))
		Expect(d.Stage).To(Equal("B. Sales Qualified Leads"))
		Expect(d.Product).To(Equal("Pure Service"))
		Expect(d.Caveats).To(BeEmpty())
	})

	It("records a caveat for every missing expected field", func() {
		d := board.CleanDeal(record("7", "Empty",
			"Masked Deal value", "n/a",
			"Closure Probability", "unknown",
		))
		Expect(d.Value).To(BeNil())
		Expect(d.ClosureProbability).To(BeNil())
		Expect(d.Caveats).To(ConsistOf(
			board.CaveatDealValueMissing,
			board.CaveatProbabilityMissing,
			board.CaveatCloseDateMissing,
		))
	})

	It("accepts a tentative close date in place of the actual one", func() {
		d := board.CleanDeal(record("8", "Later", "Tentative Close Date", "2024-06-30"))
		Expect(d.Caveats).NotTo(ContainElement(board.CaveatCloseDateMissing))
	})
})

var _ = Describe("CleanWorkOrder", func() {
	It("parses amounts and statuses", func() {
		w := board.CleanWorkOrder(record("9", "Acme Survey",
			"Amount in Rupees (Excl of GST) (Masked)", "1,00,000",
			"Billed Value in Rupees (Excl of GST.) (Masked)", "50,000",
			"Collected Amount in Rupees (Incl of GST.) (Masked)", "",
			"Sector", "MINING",
			"Execution Status", "Ongoing",
			"Nature of Work", "One time Project",
			"Date of PO/LOI", "2023-11-02",
			"Serial #", "SDPLDEAL-001",
		))

		Expect(w.DealName).To(Equal("Acme Survey"))
		Expect(*w.Amount).To(Equal(100000.0))
		Expect(*w.BilledValue).To(Equal(50000.0))
		Expect(w.CollectedAmount).To(BeNil())
		Expect(w.Sector).To(Equal("Mining"))
		Expect(w.ExecutionStatus).To(Equal("In Progress"))
		Expect(w.NatureOfWork).To(Equal("One time Project"))
		Expect(w.PODate).To(Equal("2023-11-02"))
		Expect(w.SerialNumber).To(Equal("SDPLDEAL-001"))
		Expect(w.Caveats).To(ConsistOf(board.CaveatCollectedAmountMissing))
	})

	It("never drops a malformed record", func() {
		out := board.CleanWorkOrders([]board.RawRecord{
			record("1", "ok", "Amount in Rupees (Excl of GST) (Masked)", "10"),
			record("2", "", "Amount in Rupees (Excl of GST) (Masked)", "??"),
		})
		Expect(out).To(HaveLen(2))
		Expect(out[1].Amount).To(BeNil())
		Expect(out[1].Caveats).To(ContainElement(board.CaveatExecutionStatusMissing))
	})
})

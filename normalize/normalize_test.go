package normalize_test

import (
	"boardsight/normalize"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var nullInputs = []string{"", "   ", "N/A", "n/a", "-", "NULL", "null", "None", "NaN"}

var _ = Describe("Normalize", func() {

	Describe("null tokens", func() {
		It("short-circuits every parser", func() {
			for _, raw := range nullInputs {
				Expect(normalize.IsNull(raw)).To(BeTrue(), raw)
				Expect(normalize.Sector(raw)).To(BeEmpty(), raw)
				Expect(normalize.DealStatus(raw)).To(BeEmpty(), raw)
				Expect(normalize.ExecutionStatus(raw)).To(BeEmpty(), raw)

				_, ok := normalize.Currency(raw)
				Expect(ok).To(BeFalse(), raw)
				_, ok = normalize.Number(raw)
				Expect(ok).To(BeFalse(), raw)
				_, ok = normalize.Date(raw)
				Expect(ok).To(BeFalse(), raw)
			}
		})
	})

	Describe("Sector", func() {
		It("collapses powerline variants onto one label", func() {
			Expect(normalize.Sector("POWER LINE")).To(Equal("Powerline"))
			Expect(normalize.Sector("power-line")).To(Equal("Powerline"))
			Expect(normalize.Sector("Powerline")).To(Equal("Powerline"))
			Expect(normalize.Sector("  power lines ")).To(Equal("Powerline"))
		})

		DescribeTable("maps known aliases",
			func(raw, want string) {
				Expect(normalize.Sector(raw)).To(Equal(want))
			},
			Entry("agri", "agri", "Agriculture"),
			Entry("oil and gas", "Oil and Gas", "Oil & Gas"),
			Entry("oil&gas", "OIL&GAS", "Oil & Gas"),
			Entry("defence", "Defence", "Defense"),
			Entry("dsp", "dsp", "DSP"),
			Entry("railways", "Railways", "Railway"),
		)

		It("title-cases unmapped labels", func() {
			Expect(normalize.Sector("  smart CITIES ")).To(Equal("Smart Cities"))
		})
	})

	Describe("status labels", func() {
		It("canonicalizes deal statuses", func() {
			Expect(normalize.DealStatus("active")).To(Equal(normalize.StatusOpen))
			Expect(normalize.DealStatus("Closed - Won")).To(Equal(normalize.StatusClosedWon))
			Expect(normalize.DealStatus("closed loss")).To(Equal(normalize.StatusClosedLost))
			Expect(normalize.DealStatus("HOLD")).To(Equal("On Hold"))
		})

		It("keeps unknown deal statuses trimmed but otherwise untouched", func() {
			Expect(normalize.DealStatus("  negotiation PENDING ")).To(Equal("negotiation PENDING"))
		})

		It("canonicalizes execution statuses", func() {
			Expect(normalize.ExecutionStatus("done")).To(Equal("Completed"))
			Expect(normalize.ExecutionStatus("Ongoing")).To(Equal("In Progress"))
			Expect(normalize.ExecutionStatus("Executed until current month")).To(Equal("Ongoing (Monthly)"))
			Expect(normalize.ExecutionStatus("canceled")).To(Equal("Cancelled"))
			Expect(normalize.ExecutionStatus("Details pending from Client")).To(Equal("Details pending from Client"))
		})
	})

	Describe("Currency", func() {
		DescribeTable("parses INR strings",
			func(raw string, want float64) {
				v, ok := normalize.Currency(raw)
				Expect(ok).To(BeTrue(), raw)
				Expect(v).To(BeNumerically("~", want, 1e-6))
			},
			Entry("rupee symbol with lakh grouping", "₹12,34,567", 1234567.0),
			Entry("crore suffix", "INR 2.5 Cr", 25000000.0),
			Entry("lakh suffix", "3 Lakh", 300000.0),
			Entry("short lakh suffix", "4.5L", 450000.0),
			Entry("rs prefix", "Rs. 1,500", 1500.0),
			Entry("plain number", "98765.43", 98765.43),
		)

		It("rejects garbage", func() {
			_, ok := normalize.Currency("abc")
			Expect(ok).To(BeFalse())
			_, ok = normalize.Currency("Cr")
			Expect(ok).To(BeFalse())
			_, ok = normalize.Currency("Inf")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Number", func() {
		It("strips separators and percent signs", func() {
			v, ok := normalize.Number("1,250")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(1250.0))

			v, ok = normalize.Number("75%")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(75.0))
		})

		It("rejects text", func() {
			_, ok := normalize.Number("high")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Date", func() {
		It("anchors Excel serials at 1899-12-30", func() {
			d, ok := normalize.Date("45292")
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal("2024-01-01"))

			d, ok = normalize.Date("45292.75")
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal("2024-01-01"))
		})

		DescribeTable("parses calendar layouts",
			func(raw, want string) {
				d, ok := normalize.Date(raw)
				Expect(ok).To(BeTrue(), raw)
				Expect(d).To(Equal(want))
			},
			Entry("iso", "2024-03-05", "2024-03-05"),
			Entry("day first", "31/01/2024", "2024-01-31"),
			Entry("day first short year", "05/02/24", "2024-02-05"),
			Entry("dashed day first", "07-08-2023", "2023-08-07"),
			Entry("month first fallback", "12/31/2023", "2023-12-31"),
			Entry("long month", "March 9, 2024", "2024-03-09"),
			Entry("short month", "Mar 9, 2024", "2024-03-09"),
			Entry("iso with time", "2024-03-05T10:11:12", "2024-03-05"),
			Entry("iso with fraction", "2024-03-05T10:11:12.123456", "2024-03-05"),
		)

		It("treats numbers outside the serial window as non-dates", func() {
			_, ok := normalize.Date("1500")
			Expect(ok).To(BeFalse())
		})

		It("rejects free text", func() {
			_, ok := normalize.Date("not a date")
			Expect(ok).To(BeFalse())
		})
	})
})

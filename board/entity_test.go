package board_test

import (
	"encoding/json"

	"boardsight/board"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func asMap(v any) map[string]any {
	b, err := json.Marshal(v)
	Expect(err).NotTo(HaveOccurred())
	var out map[string]any
	Expect(json.Unmarshal(b, &out)).To(Succeed())
	return out
}

var _ = Describe("entity JSON", func() {
	It("serializes absent deal fields as null", func() {
		d := board.CleanDeal(record("1", "Alpha", "Deal Status", "Open"))
		out := asMap(d)
		Expect(out).To(HaveKeyWithValue("deal_name", "Alpha"))
		Expect(out).To(HaveKeyWithValue("deal_status", "Open"))
		Expect(out).To(HaveKeyWithValue("owner_code", BeNil()))
		Expect(out).To(HaveKeyWithValue("close_date", BeNil()))
		Expect(out).To(HaveKeyWithValue("deal_value", BeNil()))
		Expect(out).To(HaveKeyWithValue("closure_probability", BeNil()))
	})

	It("serializes absent work order fields as null", func() {
		w := board.CleanWorkOrder(record("7", "Beta", "Sector", "Mining"))
		out := asMap(w)
		Expect(out).To(HaveKeyWithValue("sector", "Mining"))
		Expect(out).To(HaveKeyWithValue("execution_status", BeNil()))
		Expect(out).To(HaveKeyWithValue("amount_excl_gst", BeNil()))
		Expect(out).To(HaveKeyWithValue("collected_amount", BeNil()))
	})

	It("keeps an empty caveat set as a list", func() {
		out := asMap(board.Deal{Name: "Gamma"})
		Expect(out).To(HaveKeyWithValue("data_quality_caveats", BeEmpty()))
		Expect(out["data_quality_caveats"]).NotTo(BeNil())
	})
})

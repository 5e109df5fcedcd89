package board

import "encoding/json"

// Caveat tags an expected field that was missing or could not be parsed.
type Caveat string

const (
	CaveatDealValueMissing       Caveat = "deal_value_missing"
	CaveatProbabilityMissing     Caveat = "probability_missing"
	CaveatCloseDateMissing       Caveat = "close_date_missing"
	CaveatAmountMissing          Caveat = "amount_missing"
	CaveatBilledValueMissing     Caveat = "billed_value_missing"
	CaveatCollectedAmountMissing Caveat = "collected_amount_missing"
	CaveatExecutionStatusMissing Caveat = "execution_status_missing"
)

// Deal is a cleaned item of the Deals Pipeline board. Empty strings and nil
// numbers mean the value was absent on the board.
type Deal struct {
	ID                 string   `json:"id"`
	Name               string   `json:"deal_name"`
	OwnerCode          string   `json:"owner_code"`
	ClientCode         string   `json:"client_code"`
	Status             string   `json:"deal_status"`
	Stage              string   `json:"deal_stage"`
	Value              *float64 `json:"deal_value"`
	ClosureProbability *float64 `json:"closure_probability"`
	CloseDate          string   `json:"close_date"`
	TentativeCloseDate string   `json:"tentative_close_date"`
	Sector             string   `json:"sector"`
	Product            string   `json:"product"`
	CreatedDate        string   `json:"created_date"`
	Caveats            []Caveat `json:"data_quality_caveats"`
}

// WorkOrder is a cleaned item of the Work Orders Tracker board.
type WorkOrder struct {
	ID              string   `json:"id"`
	DealName        string   `json:"deal_name"`
	CustomerCode    string   `json:"customer_code"`
	SerialNumber    string   `json:"serial_number"`
	NatureOfWork    string   `json:"nature_of_work"`
	ExecutionStatus string   `json:"execution_status"`
	Sector          string   `json:"sector"`
	TypeOfWork      string   `json:"type_of_work"`
	Amount          *float64 `json:"amount_excl_gst"`
	BilledValue     *float64 `json:"billed_value_excl_gst"`
	CollectedAmount *float64 `json:"collected_amount"`
	PODate          string   `json:"po_date"`
	DeliveryDate    string   `json:"delivery_date"`
	InvoiceStatus   string   `json:"invoice_status"`
	WOStatus        string   `json:"wo_status"`
	BDPersonnel     string   `json:"bd_personnel"`
	ARPriority      string   `json:"ar_priority"`
	Caveats         []Caveat `json:"data_quality_caveats"`
}

// text maps an absent text value to JSON null.
func text(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (d Deal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                 *string  `json:"id"`
		Name               *string  `json:"deal_name"`
		OwnerCode          *string  `json:"owner_code"`
		ClientCode         *string  `json:"client_code"`
		Status             *string  `json:"deal_status"`
		Stage              *string  `json:"deal_stage"`
		Value              *float64 `json:"deal_value"`
		ClosureProbability *float64 `json:"closure_probability"`
		CloseDate          *string  `json:"close_date"`
		TentativeCloseDate *string  `json:"tentative_close_date"`
		Sector             *string  `json:"sector"`
		Product            *string  `json:"product"`
		CreatedDate        *string  `json:"created_date"`
		Caveats            []Caveat `json:"data_quality_caveats"`
	}{
		text(d.ID), text(d.Name), text(d.OwnerCode), text(d.ClientCode),
		text(d.Status), text(d.Stage), d.Value, d.ClosureProbability,
		text(d.CloseDate), text(d.TentativeCloseDate), text(d.Sector),
		text(d.Product), text(d.CreatedDate), caveats(d.Caveats),
	})
}

func (w WorkOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              *string  `json:"id"`
		DealName        *string  `json:"deal_name"`
		CustomerCode    *string  `json:"customer_code"`
		SerialNumber    *string  `json:"serial_number"`
		NatureOfWork    *string  `json:"nature_of_work"`
		ExecutionStatus *string  `json:"execution_status"`
		Sector          *string  `json:"sector"`
		TypeOfWork      *string  `json:"type_of_work"`
		Amount          *float64 `json:"amount_excl_gst"`
		BilledValue     *float64 `json:"billed_value_excl_gst"`
		CollectedAmount *float64 `json:"collected_amount"`
		PODate          *string  `json:"po_date"`
		DeliveryDate    *string  `json:"delivery_date"`
		InvoiceStatus   *string  `json:"invoice_status"`
		WOStatus        *string  `json:"wo_status"`
		BDPersonnel     *string  `json:"bd_personnel"`
		ARPriority      *string  `json:"ar_priority"`
		Caveats         []Caveat `json:"data_quality_caveats"`
	}{
		text(w.ID), text(w.DealName), text(w.CustomerCode), text(w.SerialNumber),
		text(w.NatureOfWork), text(w.ExecutionStatus), text(w.Sector), text(w.TypeOfWork),
		w.Amount, w.BilledValue, w.CollectedAmount, text(w.PODate), text(w.DeliveryDate),
		text(w.InvoiceStatus), text(w.WOStatus), text(w.BDPersonnel), text(w.ARPriority),
		caveats(w.Caveats),
	})
}

// caveats keeps an empty caveat set as [] rather than null.
func caveats(c []Caveat) []Caveat {
	if c == nil {
		return []Caveat{}
	}
	return c
}

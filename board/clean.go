package board

import "boardsight/normalize"

// Column titles on the Deals Pipeline board.
const (
	colDealValue          = "Masked Deal value"
	colClosureProbability = "Closure Probability"
	colCloseDate          = "Close Date (A)"
	colTentativeCloseDate = "Tentative Close Date"
	colCreatedDate        = "Created Date"
	colDealSector         = "Sector/service"
	colDealStatus         = "Deal Status"
	colOwnerCode          = "Owner code"
	colClientCode         = "Client Code"
	colDealStage          = "Deal Stage"
	colProduct            = "Product deal"
)

// Column titles on the Work Orders Tracker board.
const (
	colAmount          = "Amount in Rupees (Excl of GST) (Masked)"
	colBilledValue     = "Billed Value in Rupees (Excl of GST.) (Masked)"
	colCollectedAmount = "Collected Amount in Rupees (Incl of GST.) (Masked)"
	colWOSector        = "Sector"
	colExecutionStatus = "Execution Status"
	colCustomerCode    = "Customer Name Code"
	colSerialNumber    = "Serial #"
	colNatureOfWork    = "Nature of Work"
	colTypeOfWork      = "Type of Work"
	colPODate          = "Date of PO/LOI"
	colDeliveryDate    = "Data Delivery Date"
	colInvoiceStatus   = "Invoice Status"
	colWOStatus        = "WO Status (billed)"
	colBDPersonnel     = "BD/KAM Personnel code"
	colARPriority      = "AR Priority account"
)

// CleanDeal builds a Deal from a Deals board item. It never fails: anything
// missing or unparseable is left absent and tagged with a caveat.
func CleanDeal(r RawRecord) Deal {
	d := Deal{
		ID:                 r.ID,
		Name:               r.Name,
		OwnerCode:          r.Column(colOwnerCode),
		ClientCode:         r.Column(colClientCode),
		Status:             normalize.DealStatus(r.Column(colDealStatus)),
		Stage:              r.Column(colDealStage),
		Value:              optional(normalize.Currency(r.Column(colDealValue))),
		ClosureProbability: optional(normalize.Number(r.Column(colClosureProbability))),
		CloseDate:          date(r.Column(colCloseDate)),
		TentativeCloseDate: date(r.Column(colTentativeCloseDate)),
		Sector:             normalize.Sector(r.Column(colDealSector)),
		Product:            r.Column(colProduct),
		CreatedDate:        date(r.Column(colCreatedDate)),
		Caveats:            []Caveat{},
	}

	if d.Value == nil {
		d.Caveats = append(d.Caveats, CaveatDealValueMissing)
	}
	if d.ClosureProbability == nil {
		d.Caveats = append(d.Caveats, CaveatProbabilityMissing)
	}
	if d.CloseDate == "" && d.TentativeCloseDate == "" {
		d.Caveats = append(d.Caveats, CaveatCloseDateMissing)
	}
	return d
}

// CleanWorkOrder builds a WorkOrder from a Work Orders board item.
func CleanWorkOrder(r RawRecord) WorkOrder {
	w := WorkOrder{
		ID:              r.ID,
		DealName:        r.Name,
		CustomerCode:    r.Column(colCustomerCode),
		SerialNumber:    r.Column(colSerialNumber),
		NatureOfWork:    r.Column(colNatureOfWork),
		ExecutionStatus: normalize.ExecutionStatus(r.Column(colExecutionStatus)),
		Sector:          normalize.Sector(r.Column(colWOSector)),
		TypeOfWork:      r.Column(colTypeOfWork),
		Amount:          optional(normalize.Currency(r.Column(colAmount))),
		BilledValue:     optional(normalize.Currency(r.Column(colBilledValue))),
		CollectedAmount: optional(normalize.Currency(r.Column(colCollectedAmount))),
		PODate:          date(r.Column(colPODate)),
		DeliveryDate:    date(r.Column(colDeliveryDate)),
		InvoiceStatus:   r.Column(colInvoiceStatus),
		WOStatus:        r.Column(colWOStatus),
		BDPersonnel:     r.Column(colBDPersonnel),
		ARPriority:      r.Column(colARPriority),
		Caveats:         []Caveat{},
	}

	if w.Amount == nil {
		w.Caveats = append(w.Caveats, CaveatAmountMissing)
	}
	if w.BilledValue == nil {
		w.Caveats = append(w.Caveats, CaveatBilledValueMissing)
	}
	if w.CollectedAmount == nil {
		w.Caveats = append(w.Caveats, CaveatCollectedAmountMissing)
	}
	if w.ExecutionStatus == "" {
		w.Caveats = append(w.Caveats, CaveatExecutionStatusMissing)
	}
	return w
}

// CleanDeals cleans a batch of Deals board items, preserving order.
func CleanDeals(records []RawRecord) []Deal {
	out := make([]Deal, 0, len(records))
	for _, r := range records {
		out = append(out, CleanDeal(r))
	}
	return out
}

// CleanWorkOrders cleans a batch of Work Orders board items, preserving order.
func CleanWorkOrders(records []RawRecord) []WorkOrder {
	out := make([]WorkOrder, 0, len(records))
	for _, r := range records {
		out = append(out, CleanWorkOrder(r))
	}
	return out
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func date(raw string) string {
	d, _ := normalize.Date(raw)
	return d
}

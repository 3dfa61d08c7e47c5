package entity

import "time"

// Invoice is an amount billed to a company
type Invoice struct {
	ID       int64      `json:"id"`
	CompCode string     `json:"comp_code"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
}

// InvoiceRef is the short form returned after an invoice is deleted
type InvoiceRef struct {
	ID       int64   `json:"id"`
	CompCode string  `json:"comp_code"`
	Amt      float64 `json:"amt"`
}

// Ref returns the id/company/amount triple identifying inv
func (inv *Invoice) Ref() InvoiceRef {
	return InvoiceRef{ID: inv.ID, CompCode: inv.CompCode, Amt: inv.Amt}
}


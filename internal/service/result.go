package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/poforge/poforge/internal/domain/purchaseorder"
)

// Processing status values carried in the structured result part.
const (
	StatusApproved         = "APPROVED"
	StatusPendingApproval  = "PENDING_APPROVAL"
	StatusValidationFailed = "VALIDATION_FAILED"
)

// Result is the full outcome of processing one purchase order: validation
// errors and warnings, the summary, and the financial fields echoed for the
// CSV projection.
type Result struct {
	Status           string                `json:"status"`
	PONumber         string                `json:"poNumber"`
	ValidationErrors []string              `json:"validationErrors"`
	Warnings         []string              `json:"warnings"`
	Summary          purchaseorder.Summary `json:"summary"`
	ProcessedAt      time.Time             `json:"processedAt"`
	SupplierName     string                `json:"supplierName"`
	BuyerDepartment  string                `json:"buyerDepartment"`
	Notes            string                `json:"notes,omitempty"`
	SubTotal         float64               `json:"subTotal"`
	Tax              float64               `json:"tax"`
	GrandTotal       float64               `json:"grandTotal"`
}

// buildResult assembles the Result for a validated purchase order.
func buildResult(po *purchaseorder.PurchaseOrder, errs, warnings []string, processedAt time.Time) Result {
	status := StatusPendingApproval
	switch {
	case len(errs) > 0:
		status = StatusValidationFailed
	case po.IsApproved:
		status = StatusApproved
	}

	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}

	return Result{
		Status:           status,
		PONumber:         po.PONumber,
		ValidationErrors: errs,
		Warnings:         warnings,
		Summary:          purchaseorder.Summarize(po),
		ProcessedAt:      processedAt,
		SupplierName:     po.SupplierName,
		BuyerDepartment:  po.BuyerDepartment,
		Notes:            po.Notes,
		SubTotal:         po.SubTotal,
		Tax:              po.Tax,
		GrandTotal:       po.GrandTotal,
	}
}

// CSVLine renders the fixed-order audit line:
// poNumber,subTotal,tax,grandTotal,supplierName,buyerDepartment,"notes".
// The notes field is quoted, with embedded quotes doubled.
func (r Result) CSVLine() string {
	fields := []string{
		r.PONumber,
		formatAmount(r.SubTotal),
		formatAmount(r.Tax),
		formatAmount(r.GrandTotal),
		r.SupplierName,
		r.BuyerDepartment,
		`"` + strings.ReplaceAll(r.Notes, `"`, `""`) + `"`,
	}
	return strings.Join(fields, ",")
}

// formatAmount renders a monetary value in its shortest exact form.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

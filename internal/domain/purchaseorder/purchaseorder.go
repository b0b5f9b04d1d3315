// Package purchaseorder defines the PurchaseOrder domain entity and the
// business rules applied to it.
package purchaseorder

// Item is a single line of a purchase order. Items have no independent
// lifecycle; they are created and destroyed with their parent order.
type Item struct {
	ItemCode    string  `json:"itemCode"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// PurchaseOrder is the business document submitted for validation.
type PurchaseOrder struct {
	SupplierName         string  `json:"supplierName"`
	SupplierAddressLine1 string  `json:"supplierAddressLine1"`
	SupplierAddressLine2 string  `json:"supplierAddressLine2,omitempty"`
	SupplierCity         string  `json:"supplierCity"`
	SupplierState        string  `json:"supplierState"`
	SupplierPostalCode   string  `json:"supplierPostalCode"`
	SupplierCountry      string  `json:"supplierCountry"`
	Items                []Item  `json:"items"`
	PONumber             string  `json:"poNumber"`
	CreatedBy            string  `json:"createdBy"`
	BuyerDepartment      string  `json:"buyerDepartment"`
	Notes                string  `json:"notes,omitempty"`
	TaxRate              float64 `json:"taxRate"`
	SubTotal             float64 `json:"subTotal"`
	Tax                  float64 `json:"tax"`
	GrandTotal           float64 `json:"grandTotal"`
	IsApproved           bool    `json:"isApproved"`
	ApprovalReason       string  `json:"approvalReason,omitempty"`
}

// Summary is a compact aggregate view of a purchase order. Financial fields
// are echoed from the document, never recomputed.
type Summary struct {
	TotalItems    int     `json:"totalItems"`
	TotalQuantity int     `json:"totalQuantity"`
	SubTotal      float64 `json:"subTotal"`
	Tax           float64 `json:"tax"`
	GrandTotal    float64 `json:"grandTotal"`
	Supplier      string  `json:"supplier"`
	Department    string  `json:"department"`
	IsApproved    bool    `json:"isApproved"`
}

// Summarize projects a purchase order into its Summary. It runs even for
// invalid documents to aid diagnostics.
func Summarize(po *PurchaseOrder) Summary {
	total := 0
	for _, item := range po.Items {
		total += item.Quantity
	}
	return Summary{
		TotalItems:    len(po.Items),
		TotalQuantity: total,
		SubTotal:      po.SubTotal,
		Tax:           po.Tax,
		GrandTotal:    po.GrandTotal,
		Supplier:      po.SupplierName,
		Department:    po.BuyerDepartment,
		IsApproved:    po.IsApproved,
	}
}

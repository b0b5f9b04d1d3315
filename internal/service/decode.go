package service

import (
	"encoding/json"

	"github.com/poforge/poforge/internal/domain"
	"github.com/poforge/poforge/internal/domain/purchaseorder"
	"github.com/poforge/poforge/internal/port/a2a"
)

// documentKeys are the fields a JSON object must carry to count as a
// purchase order document. Optional fields (supplierAddressLine2, notes,
// approvalReason) are excluded.
var documentKeys = []string{
	"supplierName",
	"supplierAddressLine1",
	"supplierCity",
	"supplierState",
	"supplierPostalCode",
	"supplierCountry",
	"items",
	"poNumber",
	"createdBy",
	"buyerDepartment",
	"taxRate",
	"subTotal",
	"tax",
	"grandTotal",
	"isApproved",
}

// wrapperKey names the single field of the wrapped document shape.
const wrapperKey = "purchaseOrder"

// extractPurchaseOrder locates and decodes exactly one purchase order in the
// envelope's parts. Parts are visited in order; per part the wrapped shape
// takes priority over the direct shape, and text parts are parsed as JSON
// and retried the same way. The first successful decode wins.
func extractPurchaseOrder(msg a2a.Message) (*purchaseorder.PurchaseOrder, error) {
	for _, part := range msg.Parts {
		var raw json.RawMessage
		switch part.Kind {
		case a2a.PartKindData:
			raw = part.Data
		case a2a.PartKindText:
			raw = json.RawMessage(part.Text)
		}
		if po, ok := decodeDocument(raw); ok {
			return po, nil
		}
	}
	return nil, domain.ErrNoDocument
}

// decodeDocument dispatches on the shape of the JSON object: an object with
// the wrapper key holds the document nested one level down, otherwise the
// object must be the document itself.
func decodeDocument(raw json.RawMessage) (*purchaseorder.PurchaseOrder, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	if inner, ok := fields[wrapperKey]; ok {
		if po, ok := decodeDirect(inner); ok {
			return po, true
		}
	}
	return decodeDirect(raw)
}

// decodeDirect decodes an object as a purchase order, requiring every
// non-optional document field to be present.
func decodeDirect(raw json.RawMessage) (*purchaseorder.PurchaseOrder, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for _, key := range documentKeys {
		if _, ok := fields[key]; !ok {
			return nil, false
		}
	}

	var po purchaseorder.PurchaseOrder
	if err := json.Unmarshal(raw, &po); err != nil {
		return nil, false
	}
	return &po, true
}

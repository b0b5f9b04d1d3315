package purchaseorder

import (
	"fmt"
	"math"
	"strings"
)

// Tolerance is the absolute tolerance applied to all financial
// reconciliation checks.
const Tolerance = 0.01

// HighValueThreshold is the grand total above which an order is flagged for
// additional approval.
const HighValueThreshold = 10000.0

// MaxTaxRate is the upper bound of the expected tax rate range [0, MaxTaxRate].
const MaxTaxRate = 0.2

// AuthorizedDepartments lists departments allowed to raise purchase orders.
// Matching is case-sensitive.
var AuthorizedDepartments = []string{"Marketing", "Sales", "IT", "Finance", "Operations", "HR"}

// Validate applies all business rules to a purchase order and returns the
// violated ones as two ordered lists: errors block approval, warnings are
// advisory. Every rule is evaluated; none short-circuits another.
func Validate(po *PurchaseOrder) (errs, warnings []string) {
	if strings.TrimSpace(po.SupplierName) == "" {
		errs = append(errs, "Supplier name is required")
	}
	if strings.TrimSpace(po.PONumber) == "" {
		errs = append(errs, "PO number is required")
	}
	if strings.TrimSpace(po.CreatedBy) == "" {
		errs = append(errs, "Created by field is required")
	}
	if strings.TrimSpace(po.BuyerDepartment) == "" {
		errs = append(errs, "Buyer department is required")
	}

	if len(po.Items) == 0 {
		errs = append(errs, "Purchase order must contain at least one item")
	} else {
		for i, item := range po.Items {
			n := i + 1 // positions are 1-based in messages
			if strings.TrimSpace(item.ItemCode) == "" {
				errs = append(errs, fmt.Sprintf("Item %d is missing item code", n))
			}
			if strings.TrimSpace(item.Description) == "" {
				errs = append(errs, fmt.Sprintf("Item %d is missing description", n))
			}
			if item.Quantity <= 0 {
				errs = append(errs, fmt.Sprintf("Item %d has zero quantity", n))
			}
			if item.UnitPrice <= 0 {
				errs = append(errs, fmt.Sprintf("Item %d has invalid unit price", n))
			}

			expected := float64(item.Quantity) * item.UnitPrice
			if math.Abs(item.LineTotal-expected) > Tolerance {
				warnings = append(warnings, fmt.Sprintf(
					"Item %d line total mismatch: expected %.2f, got %.2f", n, expected, item.LineTotal))
			}
		}
	}

	var calculatedSubTotal float64
	for _, item := range po.Items {
		calculatedSubTotal += item.LineTotal
	}
	if math.Abs(po.SubTotal-calculatedSubTotal) > Tolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Subtotal mismatch: expected %.2f, got %.2f", calculatedSubTotal, po.SubTotal))
	}

	calculatedTax := po.SubTotal * po.TaxRate
	if math.Abs(po.Tax-calculatedTax) > Tolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Tax calculation mismatch: expected %.2f, got %.2f", calculatedTax, po.Tax))
	}

	calculatedGrandTotal := po.SubTotal + po.Tax
	if math.Abs(po.GrandTotal-calculatedGrandTotal) > Tolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Grand total mismatch: expected %.2f, got %.2f", calculatedGrandTotal, po.GrandTotal))
	}

	if po.GrandTotal > HighValueThreshold {
		warnings = append(warnings, "High value purchase order - may require additional approval")
	}
	if po.TaxRate < 0 || po.TaxRate > MaxTaxRate {
		warnings = append(warnings, "Unusual tax rate detected")
	}
	if !isAuthorizedDepartment(po.BuyerDepartment) {
		warnings = append(warnings, fmt.Sprintf(
			"Department '%s' may not be authorized for purchases", po.BuyerDepartment))
	}

	return errs, warnings
}

func isAuthorizedDepartment(dept string) bool {
	for _, d := range AuthorizedDepartments {
		if dept == d {
			return true
		}
	}
	return false
}

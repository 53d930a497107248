package service

import (
	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/shopspring/decimal"
)

// validateProductAmounts checks the monetary fields that struct tags cannot express.
// Nil values are skipped so partial updates can reuse it.
func validateProductAmounts(price, gst *decimal.Decimal) error {
	if price != nil && !price.IsPositive() {
		return apperrors.NewValidationError("price", "must be greater than 0")
	}
	if gst != nil && gst.IsNegative() {
		return apperrors.NewValidationError("gst_percentage", "must not be negative")
	}
	if gst != nil && gst.GreaterThan(decimal.NewFromInt(100)) {
		return apperrors.NewValidationError("gst_percentage", "must not exceed 100")
	}
	return nil
}

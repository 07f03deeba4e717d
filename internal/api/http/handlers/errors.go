package handlers

import (
	"errors"

	"github.com/spec-kit/storefront-service/internal/domain"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// mapServiceError translates domain failures into HTTP-facing errors. Anything
// unrecognized passes through and becomes a generic 500.
func mapServiceError(err error) error {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		details := make(map[string]any, len(verr.Fields))
		for field, msg := range verr.Fields {
			details[field] = msg
		}
		return apperrors.NewValidationError("validation failed", details)
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, domain.ErrItemNotFound):
		return apperrors.NewNotFound("item", nil)
	case errors.Is(err, domain.ErrCartNotFound):
		return apperrors.NewNotFound("cart", nil)
	}
	return err
}

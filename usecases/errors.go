package usecases

import (
	"errors"

	"houses-api/apperr"

	"gorm.io/gorm"
)

// translate maps persistence errors onto apperr kinds; errors that already
// carry a kind pass through.
func translate(err error, notFound func() error, conflict func() error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound()
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if conflict != nil {
			return conflict()
		}
		return apperr.Conflict("Duplicate field value entered")
	}
	return apperr.Unexpected(err)
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/httperr"
)

// notFound turns gorm's missing-row error into the given business code.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

package service

import (
	"errors"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/zerror"
)

// mapNotFound turns a repository miss into the given business error and
// leaves every other error untouched.
func mapNotFound(err error, notFound zerror.ZError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound.WrapParent(err)
	}
	return err
}

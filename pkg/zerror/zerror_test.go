package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("THING_NOT_FOUND", "Thing not found")

	t.Run("Should match predefined error after wrapping", func(t *testing.T) {
		cause := errors.New("no rows")
		err := fmt.Errorf("get thing: %w", notFound.WrapParent(cause))

		assert.ErrorIs(t, err, notFound)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("OTHER_NOT_FOUND", "Other not found")
		assert.NotErrorIs(t, notFound, other)
	})

	t.Run("Should extract ZError with errors.As", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", notFound)

		var zErr zerror.ZError
		assert.True(t, errors.As(err, &zErr))
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
		assert.Equal(t, "THING_NOT_FOUND", zErr.Code())
		assert.Equal(t, "Thing not found", zErr.Msg())
	})

	t.Run("Should include parent in message", func(t *testing.T) {
		err := notFound.WrapParent(errors.New("boom"))
		assert.Equal(t, "Code=THING_NOT_FOUND, Msg=Thing not found, Parent=(boom)", err.Error())
		assert.Equal(t, "Code=THING_NOT_FOUND, Msg=Thing not found", notFound.Error())
	})
}

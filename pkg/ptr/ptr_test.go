package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/ptr"
)

func TestValueOr(t *testing.T) {
	assert.Equal(t, 3, ptr.ValueOr(ptr.New(3), 10))
	assert.Equal(t, 10, ptr.ValueOr[int](nil, 10))
}

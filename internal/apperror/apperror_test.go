package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"go-stock-tracker/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockMessage(t *testing.T) {
	err := apperror.InsufficientStock(7)
	assert.EqualError(t, err, "Not enough stock available. Maximum available: 7")
	assert.Equal(t, apperror.KindInsufficientStock, apperror.KindOf(err))
}

func TestStorageWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Storage(cause)

	assert.EqualError(t, err, "Unexpected storage error")
	assert.ErrorIs(t, err, cause)
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("handler: %w", apperror.NotFound("Product not found"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestKindOfUntypedDefaultsToStorage(t *testing.T) {
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(errors.New("boom")))
}

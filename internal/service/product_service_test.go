package service_test

import (
	"testing"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductAllocatesSequentialCodes(t *testing.T) {
	env := newTestEnv(t)

	first := createProduct(t, env, "Widget", 10)
	second := createProduct(t, env, "Gadget", 0)

	assert.Equal(t, "P0001", first.Code)
	assert.Equal(t, "P0002", second.Code)
	assert.Equal(t, 10, first.Quantity)
	assert.Equal(t, 0, second.Quantity)
	assert.Equal(t, "tester", first.CreatedBy)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.products.Create("", 5, "tester")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	assert.EqualError(t, err, "Product name is required")

	_, err = env.products.Create("Widget", -1, "tester")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	assert.EqualError(t, err, "Quantity must be a non-negative number")

	// Failed creates must not consume a code.
	p := createProduct(t, env, "Widget", 0)
	assert.Equal(t, "P0001", p.Code)
}

func TestCodesContinueAfterDelete(t *testing.T) {
	env := newTestEnv(t)

	first := createProduct(t, env, "Widget", 0)
	require.Equal(t, "P0001", first.Code)
	require.NoError(t, env.products.Delete(first.ID))

	// Codes are never reused.
	second := createProduct(t, env, "Gadget", 0)
	assert.Equal(t, "P0002", second.Code)
}

func TestUpdateProductRenamesOnly(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 7)

	updated, err := env.products.Update(product.ID, "Widget Mk2", "tester")
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", updated.Name)
	assert.Equal(t, product.Code, updated.Code)
	assert.Equal(t, 7, updated.Quantity)

	_, err = env.products.Update(product.ID, "", "tester")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))

	_, err = env.products.Update(uuid.New(), "Ghost", "tester")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteProductCascadesMovements(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	_, err := env.stock.RecordStockIn(product.ID, 5, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockOut(product.ID, 2, "", "alice")
	require.NoError(t, err)

	require.NoError(t, env.products.Delete(product.ID))

	_, err = env.products.Get(product.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.EqualValues(t, 0, env.countRows(t, &model.StockIn{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.StockOut{}))
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.products.Delete(uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	createProduct(t, env, "Widget", 0)
	createProduct(t, env, "Gadget", 0)

	products, err := env.products.List()
	require.NoError(t, err)
	require.Len(t, products, 2)
}

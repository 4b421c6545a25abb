package service_test

import (
	"testing"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStockInAndOut(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 5, "initial delivery", "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, in.Quantity)
	assert.Equal(t, "initial delivery", in.Notes)
	assert.Equal(t, 5, env.reload(t, product).Quantity)

	out, err := env.stock.RecordStockOut(product.ID, 3, "", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, 2, env.reload(t, product).Quantity)
}

func TestRecordStockOutInsufficient(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	_, err := env.stock.RecordStockIn(product.ID, 5, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockOut(product.ID, 3, "", "alice")
	require.NoError(t, err)

	_, err = env.stock.RecordStockOut(product.ID, 10, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.EqualError(t, err, "Not enough stock available. Maximum available: 2")

	// The failed attempt must leave nothing behind.
	assert.Equal(t, 2, env.reload(t, product).Quantity)
	assert.EqualValues(t, 1, env.countRows(t, &model.StockOut{}))
}

func TestRecordMovementRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 10)

	for _, quantity := range []int{0, -3} {
		_, err := env.stock.RecordStockIn(product.ID, quantity, "", "alice")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
		assert.EqualError(t, err, "Quantity must be a positive number")

		_, err = env.stock.RecordStockOut(product.ID, quantity, "", "alice")
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	}

	assert.Equal(t, 10, env.reload(t, product).Quantity)
	assert.EqualValues(t, 0, env.countRows(t, &model.StockIn{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.StockOut{}))
}

func TestRecordMovementUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stock.RecordStockIn(uuid.New(), 5, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = env.stock.RecordStockOut(uuid.New(), 5, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateStockOutUsesReversedCeiling(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 14)

	out, err := env.stock.RecordStockOut(product.ID, 4, "", "alice")
	require.NoError(t, err)
	require.Equal(t, 10, env.reload(t, product).Quantity)

	// Raising the movement to 12 is fine: the ceiling counts the old
	// movement as reversed first, so 10 + 4 = 14 is available.
	updated, err := env.stock.UpdateStockOut(out.ID, 12, "corrected", "alice")
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, "corrected", updated.Notes)
	assert.Equal(t, 2, env.reload(t, product).Quantity)

	// 20 exceeds the ceiling of 2 + 12 = 14.
	_, err = env.stock.UpdateStockOut(out.ID, 20, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.EqualError(t, err, "Not enough stock available. Maximum available: 14")

	assert.Equal(t, 2, env.reload(t, product).Quantity)
	fresh, err := env.stock.ListStockOuts(&product.ID)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 12, fresh[0].Quantity)
}

func TestUpdateStockInAppliesDelta(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 5, "", "alice")
	require.NoError(t, err)

	updated, err := env.stock.UpdateStockIn(in.ID, 100, "recount", "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Quantity)
	assert.Equal(t, "recount", updated.Notes)
	assert.Equal(t, 100, env.reload(t, product).Quantity)

	// Shrinking works the same way, no lower bound outside strict mode.
	_, err = env.stock.UpdateStockIn(in.ID, 30, "", "alice")
	require.NoError(t, err)
	assert.Equal(t, 30, env.reload(t, product).Quantity)
}

func TestUpdateMovementSameQuantityIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 7, "", "alice")
	require.NoError(t, err)
	require.Equal(t, 7, env.reload(t, product).Quantity)

	_, err = env.stock.UpdateStockIn(in.ID, 7, "same", "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, env.reload(t, product).Quantity)
}

func TestUpdateMovementNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stock.UpdateStockIn(uuid.New(), 5, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = env.stock.UpdateStockOut(uuid.New(), 5, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteStockInMayGoNegative(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 5, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockOut(product.ID, 2, "", "alice")
	require.NoError(t, err)
	require.Equal(t, 3, env.reload(t, product).Quantity)

	// Deleting the delivery after part of it was sold through leaves the
	// cached quantity negative. The ledger stays consistent with it.
	require.NoError(t, env.stock.DeleteStockIn(in.ID, "alice"))
	assert.Equal(t, -2, env.reload(t, product).Quantity)
	assert.EqualValues(t, 0, env.countRows(t, &model.StockIn{}))
}

func TestDeleteStockInStrictModeRejectsNegative(t *testing.T) {
	env := newStrictEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 5, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockOut(product.ID, 2, "", "alice")
	require.NoError(t, err)

	err = env.stock.DeleteStockIn(in.ID, "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.EqualError(t, err, "Operation would drive stock negative. Maximum removable: 3")

	// Nothing changed: the movement survives and the quantity holds.
	assert.Equal(t, 3, env.reload(t, product).Quantity)
	assert.EqualValues(t, 1, env.countRows(t, &model.StockIn{}))
}

func TestUpdateStockInStrictModeRejectsShrinkBelowZero(t *testing.T) {
	env := newStrictEnv(t)
	product := createProduct(t, env, "Widget", 0)

	in, err := env.stock.RecordStockIn(product.ID, 10, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockOut(product.ID, 8, "", "alice")
	require.NoError(t, err)
	require.Equal(t, 2, env.reload(t, product).Quantity)

	// Shrinking the delivery from 10 to 5 would leave -3.
	_, err = env.stock.UpdateStockIn(in.ID, 5, "", "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.Equal(t, 2, env.reload(t, product).Quantity)
}

func TestDeleteStockOutRestoresQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 10)

	out, err := env.stock.RecordStockOut(product.ID, 4, "", "alice")
	require.NoError(t, err)
	require.Equal(t, 6, env.reload(t, product).Quantity)

	require.NoError(t, env.stock.DeleteStockOut(out.ID, "alice"))
	assert.Equal(t, 10, env.reload(t, product).Quantity)
	assert.EqualValues(t, 0, env.countRows(t, &model.StockOut{}))
}

func TestDeleteMovementNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.stock.DeleteStockIn(uuid.New(), "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = env.stock.DeleteStockOut(uuid.New(), "alice")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

// The cached quantity must always equal initial + sum(IN) - sum(OUT) over
// the movements that still exist, whatever sequence of edits produced it.
func TestQuantityMatchesLedgerAfterMixedOperations(t *testing.T) {
	env := newTestEnv(t)
	product := createProduct(t, env, "Widget", 20)

	in1, err := env.stock.RecordStockIn(product.ID, 15, "", "alice")
	require.NoError(t, err)
	out1, err := env.stock.RecordStockOut(product.ID, 10, "", "bob")
	require.NoError(t, err)
	_, err = env.stock.RecordStockIn(product.ID, 3, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.UpdateStockIn(in1.ID, 8, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.UpdateStockOut(out1.ID, 12, "", "bob")
	require.NoError(t, err)
	require.NoError(t, env.stock.DeleteStockOut(out1.ID, "bob"))

	var sumIn, sumOut int
	require.NoError(t, env.db.Model(&model.StockIn{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", product.ID).
		Scan(&sumIn).Error)
	require.NoError(t, env.db.Model(&model.StockOut{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", product.ID).
		Scan(&sumOut).Error)

	assert.Equal(t, 20+sumIn-sumOut, env.reload(t, product).Quantity)
	assert.Equal(t, 31, env.reload(t, product).Quantity)
}

func TestListMovementsFiltersByProduct(t *testing.T) {
	env := newTestEnv(t)
	widget := createProduct(t, env, "Widget", 0)
	gadget := createProduct(t, env, "Gadget", 0)

	_, err := env.stock.RecordStockIn(widget.ID, 5, "", "alice")
	require.NoError(t, err)
	_, err = env.stock.RecordStockIn(gadget.ID, 3, "", "alice")
	require.NoError(t, err)

	all, err := env.stock.ListStockIns(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyWidget, err := env.stock.ListStockIns(&widget.ID)
	require.NoError(t, err)
	require.Len(t, onlyWidget, 1)
	assert.Equal(t, widget.ID, onlyWidget[0].ProductID)
	require.NotNil(t, onlyWidget[0].Product)
	assert.Equal(t, "Widget", onlyWidget[0].Product.Name)
}

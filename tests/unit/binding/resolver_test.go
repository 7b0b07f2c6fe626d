package binding_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/binding"
	"procura/internal/domain"
)

func testContract() (*domain.Contract, uuid.UUID, uuid.UUID) {
	supplierID := uuid.New()
	flourID := uuid.New()
	contract := &domain.Contract{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Status:     domain.ContractStatusActive,
		Items: []domain.LineItem{
			{
				ID:        uuid.New(),
				ProductID: flourID,
				Quantity:  10,
				UnitPrice: decimal.NewFromInt(250),
				Note:      "negotiated",
			},
		},
	}
	return contract, supplierID, flourID
}

func TestResolver_Unbound(t *testing.T) {
	r := binding.NewResolver(nil)

	assert.False(t, r.Bound())
	assert.False(t, r.Restricted())

	fallback := uuid.New()
	assert.Equal(t, fallback, r.SupplierID(fallback))

	// Unbound orders accept any catalog product and any quantity.
	catalog := []domain.Product{{ID: uuid.New()}, {ID: uuid.New()}}
	assert.Len(t, r.Options(catalog), 2)

	err := r.ValidateAll([]domain.LineItem{{ProductID: uuid.New(), Quantity: 1000000}})
	assert.NoError(t, err)
}

func TestResolver_BoundForcesSupplier(t *testing.T) {
	contract, supplierID, _ := testContract()
	r := binding.NewResolver(contract)

	assert.True(t, r.Bound())
	assert.Equal(t, supplierID, r.SupplierID(uuid.New()))
}

func TestResolver_OptionsRestrictedToContractLines(t *testing.T) {
	contract, _, flourID := testContract()
	r := binding.NewResolver(contract)

	catalog := []domain.Product{{ID: flourID}, {ID: uuid.New()}, {ID: uuid.New()}}
	options := r.Options(catalog)

	require.Len(t, options, 1)
	assert.Equal(t, flourID, options[0].ID)
}

func TestResolver_ContractWithoutLinesIsUnrestricted(t *testing.T) {
	contract, _, _ := testContract()
	contract.Items = nil
	r := binding.NewResolver(contract)

	assert.True(t, r.Bound())
	assert.False(t, r.Restricted())

	catalog := []domain.Product{{ID: uuid.New()}, {ID: uuid.New()}}
	assert.Len(t, r.Options(catalog), 2)
}

func TestResolver_PrefillCopiesContractLine(t *testing.T) {
	contract, _, flourID := testContract()
	r := binding.NewResolver(contract)

	prefill, ok := r.Prefill(flourID)
	require.True(t, ok)
	assert.Equal(t, int64(10), prefill.Quantity)
	assert.True(t, prefill.UnitPrice.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "negotiated", prefill.Note)
	assert.Equal(t, uuid.Nil, prefill.ID)
	assert.Equal(t, uuid.Nil, prefill.DocumentID)

	_, ok = r.Prefill(uuid.New())
	assert.False(t, ok)
}

func TestResolver_QuantityAtContractLimitPasses(t *testing.T) {
	contract, _, flourID := testContract()
	r := binding.NewResolver(contract)

	assert.NoError(t, r.ValidateLine(0, &domain.LineItem{ProductID: flourID, Quantity: 10}))
	assert.NoError(t, r.ValidateLine(0, &domain.LineItem{ProductID: flourID, Quantity: 5}))
}

func TestResolver_QuantityAboveContractLimitFails(t *testing.T) {
	contract, _, flourID := testContract()
	r := binding.NewResolver(contract)

	err := r.ValidateLine(2, &domain.LineItem{ProductID: flourID, Quantity: 11})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsContract)

	var qerr *binding.QuantityError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, 2, qerr.Line)
	assert.Equal(t, int64(11), qerr.Requested)
	assert.Equal(t, int64(10), qerr.Allowed)
	assert.Equal(t, flourID, qerr.ProductID)
}

func TestResolver_ProductNotOnContract(t *testing.T) {
	contract, _, _ := testContract()
	r := binding.NewResolver(contract)

	err := r.ValidateLine(0, &domain.LineItem{ProductID: uuid.New(), Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotOnContract)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "product_id", verr.Field)
	assert.Equal(t, 0, verr.Line)
}

func TestResolver_ValidateAllStopsAtFirstFailure(t *testing.T) {
	contract, _, flourID := testContract()
	r := binding.NewResolver(contract)

	items := []domain.LineItem{
		{ProductID: flourID, Quantity: 5},
		{ProductID: flourID, Quantity: 99},
	}

	err := r.ValidateAll(items)
	var qerr *binding.QuantityError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, 1, qerr.Line)
}

func TestResolver_RebindRevalidates(t *testing.T) {
	contract, _, flourID := testContract()
	items := []domain.LineItem{{ProductID: flourID, Quantity: 10}}

	// Valid against the original contract.
	require.NoError(t, binding.NewResolver(contract).ValidateAll(items))

	// Rebinding to a contract with a tighter line fails the same draft.
	tighter := *contract
	tighter.Items = []domain.LineItem{{ProductID: flourID, Quantity: 3}}
	err := binding.NewResolver(&tighter).ValidateAll(items)
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsContract)

	// Unbinding lifts all restrictions.
	require.NoError(t, binding.NewResolver(nil).ValidateAll(items))
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/service"
	"procura/mocks"
)

func setupCatalogService() (service.CatalogService, *mocks.MockProductRepo, *mocks.MockContractRepo) {
	productRepo := new(mocks.MockProductRepo)
	contractRepo := new(mocks.MockContractRepo)
	svc := service.NewCatalogService(productRepo, contractRepo)
	return svc, productRepo, contractRepo
}

func TestCatalogService_Create_Success(t *testing.T) {
	svc, productRepo, _ := setupCatalogService()

	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.Create(context.Background(), service.CreateProductInput{
		SKU:       "FLR-0001",
		Name:      "Harina 000 25kg",
		Unit:      "bag",
		ListPrice: d("250"),
	})

	require.NoError(t, err)
	assert.True(t, product.IsActive)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_Create_NegativeListPrice(t *testing.T) {
	svc, productRepo, _ := setupCatalogService()

	_, err := svc.Create(context.Background(), service.CreateProductInput{
		SKU:       "FLR-0001",
		Name:      "Harina",
		ListPrice: d("-1"),
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "list_price", verr.Field)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_Update_NegativeListPrice(t *testing.T) {
	svc, productRepo, _ := setupCatalogService()

	prod := flourProduct()
	productRepo.On("GetByID", mock.Anything, prod.ID).Return(prod, nil)

	bad := d("-5")
	_, err := svc.Update(context.Background(), prod.ID, service.UpdateProductInput{ListPrice: &bad})

	require.Error(t, err)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogService_OptionsForContract_Unbound(t *testing.T) {
	svc, productRepo, _ := setupCatalogService()

	catalog := []domain.Product{*flourProduct(), *flourProduct()}
	productRepo.On("List", mock.Anything, mock.AnythingOfType("port.ProductFilter")).
		Return(catalog, len(catalog), nil)

	options, err := svc.OptionsForContract(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, options, 2)
	for _, opt := range options {
		assert.False(t, opt.OnContract)
		assert.Nil(t, opt.Prefill)
	}
}

func TestCatalogService_OptionsForContract_BoundRestrictsAndPrefills(t *testing.T) {
	svc, productRepo, contractRepo := setupCatalogService()

	onContract := flourProduct()
	offContract := flourProduct()
	contract := &domain.Contract{
		ID:     uuid.New(),
		Status: domain.ContractStatusActive,
		Items: []domain.LineItem{
			{ProductID: onContract.ID, Quantity: 10, UnitPrice: d("250"), Note: "negotiated"},
		},
	}
	contractRepo.On("GetByID", mock.Anything, contract.ID).Return(contract, nil)
	productRepo.On("List", mock.Anything, mock.AnythingOfType("port.ProductFilter")).
		Return([]domain.Product{*onContract, *offContract}, 2, nil)

	options, err := svc.OptionsForContract(context.Background(), &contract.ID)

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, onContract.ID, options[0].Product.ID)
	assert.True(t, options[0].OnContract)
	require.NotNil(t, options[0].Prefill)
	assert.Equal(t, int64(10), options[0].Prefill.Quantity)
	assert.Equal(t, "negotiated", options[0].Prefill.Note)
}

func TestCatalogService_OptionsForContract_UnknownContract(t *testing.T) {
	svc, _, contractRepo := setupCatalogService()

	id := uuid.New()
	contractRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.OptionsForContract(context.Background(), &id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

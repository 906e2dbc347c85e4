package usecase_test

import (
	"context"
	"testing"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
	"revorz/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminOrderUsecase() (*usecase.AdminOrderUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *AuditRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)

	tx := &txManagerFake{repos: &txReposFake{
		carts:     cartRepo,
		cartItems: itemRepo,
		products:  productRepo,
		auditLogs: auditRepo,
	}}

	return usecase.NewAdminOrderUsecase(tx, cartRepo, auditRepo), cartRepo, itemRepo, productRepo, auditRepo
}

// =====================
// List
// =====================

func TestAdminOrderUsecase_List_InvalidStatus(t *testing.T) {
	uc, _, _, _, _ := newAdminOrderUsecase()

	_, err := uc.List(context.Background(), usecase.OrderListInput{OrderStatus: "shipped"})
	assertAppErrorKind(t, err, usecase.KindValidation)
}

func TestAdminOrderUsecase_List_PassesFilter(t *testing.T) {
	uc, cartRepo, _, _, _ := newAdminOrderUsecase()

	f := repo.OrderListFilter{OrderStatus: "waiting", Query: "alice"}
	cartRepo.On("ListCompleted", mock.Anything, f).Return([]model.Cart{
		{ID: 3, Status: model.CartStatusCompleted, OrderStatus: model.OrderStatusWaiting},
	}, nil)

	orders, err := uc.List(context.Background(), usecase.OrderListInput{OrderStatus: "waiting", Query: " alice "})
	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	cartRepo.AssertExpectations(t)
}

// =====================
// GetDetail
// =====================

func TestAdminOrderUsecase_GetDetail_ActiveCartIsNotOrder(t *testing.T) {
	uc, cartRepo, _, _, _ := newAdminOrderUsecase()

	cartRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Cart{ID: 3, Status: model.CartStatusActive}, nil)

	_, err := uc.GetDetail(context.Background(), 3)
	assertAppErrorKind(t, err, usecase.KindNotFound)
}

func TestAdminOrderUsecase_GetDetail_Success(t *testing.T) {
	uc, cartRepo, itemRepo, productRepo, _ := newAdminOrderUsecase()

	cartRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Cart{
		ID:          3,
		Status:      model.CartStatusCompleted,
		OrderStatus: model.OrderStatusWaiting,
	}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 2, UnitPrice: 500, Color: "black", Size: "M"},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "Tee", Image: "tee.png"}, nil)

	detail, err := uc.GetDetail(context.Background(), 3)
	assert.NoError(t, err)
	assert.Len(t, detail.Items, 1)
	assert.Equal(t, "Tee", detail.Items[0].Name)
	assert.Equal(t, int64(1000), detail.Total)
}

// =====================
// UpdateOrderStatus
// =====================

func TestAdminOrderUsecase_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	uc, _, _, _, _ := newAdminOrderUsecase()

	err := uc.UpdateOrderStatus(context.Background(), 100, usecase.UpdateOrderStatusInput{CartID: 3, NewStatus: "cancelled"})
	assertAppErrorKind(t, err, usecase.KindValidation)
}

func TestAdminOrderUsecase_UpdateOrderStatus_RequiresActor(t *testing.T) {
	uc, _, _, _, _ := newAdminOrderUsecase()

	err := uc.UpdateOrderStatus(context.Background(), 0, usecase.UpdateOrderStatusInput{CartID: 3, NewStatus: "approved"})
	assertAppErrorKind(t, err, usecase.KindValidation)
}

func TestAdminOrderUsecase_UpdateOrderStatus_ActiveCartNotFound(t *testing.T) {
	uc, cartRepo, _, _, auditRepo := newAdminOrderUsecase()

	cartRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Cart{ID: 3, Status: model.CartStatusActive}, nil)

	err := uc.UpdateOrderStatus(context.Background(), 100, usecase.UpdateOrderStatusInput{CartID: 3, NewStatus: "approved"})
	assertAppErrorKind(t, err, usecase.KindNotFound)

	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateOrderStatus_WritesAuditLog(t *testing.T) {
	uc, cartRepo, _, _, auditRepo := newAdminOrderUsecase()

	cartRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Cart{
		ID:          3,
		Status:      model.CartStatusCompleted,
		OrderStatus: model.OrderStatusWaiting,
	}, nil)
	cartRepo.On("UpdateOrderStatus", mock.Anything, int64(3), model.OrderStatusApproved).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.ActorUserID == 100 &&
			log.Action == model.AuditActionUpdateOrderStatus &&
			log.ResourceType == model.AuditResourceOrder &&
			log.ResourceID == 3
	})).Return(nil)

	err := uc.UpdateOrderStatus(context.Background(), 100, usecase.UpdateOrderStatusInput{CartID: 3, NewStatus: "approved"})
	assert.NoError(t, err)

	cartRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

// 同じステータスなら更新も監査ログも無し
func TestAdminOrderUsecase_UpdateOrderStatus_NoOpWhenSame(t *testing.T) {
	uc, cartRepo, _, _, auditRepo := newAdminOrderUsecase()

	cartRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Cart{
		ID:          3,
		Status:      model.CartStatusCompleted,
		OrderStatus: model.OrderStatusApproved,
	}, nil)

	err := uc.UpdateOrderStatus(context.Background(), 100, usecase.UpdateOrderStatusInput{CartID: 3, NewStatus: "approved"})
	assert.NoError(t, err)

	cartRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

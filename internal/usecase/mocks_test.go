package usecase_test

import (
	"context"
	"testing"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
	"revorz/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repositoryモック
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActiveBySessionID(ctx context.Context, sessionID string, userID *int64) (model.Cart, error) {
	args := m.Called(ctx, sessionID, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveBySessionID(ctx context.Context, sessionID string) (model.Cart, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Finalize(ctx context.Context, cartID int64, paymentMethod string, shippingAddress string, now time.Time) (model.Cart, error) {
	args := m.Called(ctx, cartID, paymentMethod, shippingAddress, now)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateOrderStatus(ctx context.Context, cartID int64, status model.OrderStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *CartRepoMock) ListCompleted(ctx context.Context, f repo.OrderListFilter) ([]model.Cart, error) {
	args := m.Called(ctx, f)
	carts, _ := args.Get(0).([]model.Cart)
	return carts, args.Error(1)
}

func (m *CartRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByVariant(ctx context.Context, cartID int64, productID int64, color string, size string) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, color, size)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByVariant(ctx context.Context, cartID int64, productID int64, color string, size string, addQty int64, unitPrice int64) error {
	args := m.Called(ctx, cartID, productID, color, size, addQty, unitPrice)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, itemID int64, qty int64) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartItemRepoMock) SumQuantityByCartID(ctx context.Context, cartID int64) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartItemRepoMock) IsOwnedBySession(ctx context.Context, itemID int64, sessionID string) (bool, error) {
	args := m.Called(ctx, itemID, sessionID)
	return args.Bool(0), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, f repo.ProductListFilter) ([]model.Product, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) DeleteByID(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRepoMock) DeleteByID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// =====================
// Txフェイク（同じモックをTx内でも返すだけ）
// =====================

type txReposFake struct {
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
	users     repo.UserRepository
	auditLogs repo.AuditLogRepository
}

func (f *txReposFake) Carts() repo.CartRepository { return f.carts }
func (f *txReposFake) CartItems() repo.CartItemRepository { return f.cartItems }
func (f *txReposFake) Products() repo.ProductRepository { return f.products }
func (f *txReposFake) Users() repo.UserRepository { return f.users }
func (f *txReposFake) AuditLogs() repo.AuditLogRepository { return f.auditLogs }

type txManagerFake struct {
	repos *txReposFake
}

func (m *txManagerFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Helper
// =====================

func assertAppErrorKind(t *testing.T, err error, kind usecase.ErrorKind) {
	t.Helper()
	ae, ok := usecase.AsAppError(err)
	if assert.True(t, ok, "expected AppError, got %v", err) {
		assert.Equal(t, kind, ae.Kind)
	}
}

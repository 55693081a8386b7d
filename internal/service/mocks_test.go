package service

import (
	"context"

	"agora/internal/model"
	"agora/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetLines(ctx context.Context, customerID string) ([]model.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartRepository) GetLine(ctx context.Context, customerID string, lineID uuid.UUID) (*model.CartLine, error) {
	args := m.Called(ctx, customerID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartRepository) UpsertLine(ctx context.Context, line *model.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, customerID string, lineID uuid.UUID, quantity int) error {
	args := m.Called(ctx, customerID, lineID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteLine(ctx context.Context, customerID string, lineID uuid.UUID) error {
	args := m.Called(ctx, customerID, lineID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, customerID string, lineIDs []uuid.UUID) error {
	args := m.Called(ctx, customerID, lineIDs)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, params repository.CreateOrderParams) (*model.Order, error) {
	args := m.Called(ctx, params)
	// Allow tests to derive the returned order from the params
	if fn, ok := args.Get(0).(func(context.Context, repository.CreateOrderParams) (*model.Order, error)); ok {
		return fn(ctx, params)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockRoster is a mock implementation of seller.Roster.
type MockRoster struct {
	mock.Mock
}

func (m *MockRoster) Contains(sellerID string) bool {
	args := m.Called(sellerID)
	return args.Bool(0)
}

func (m *MockRoster) Size() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockRoster) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPaymentRouter is a mock implementation of PaymentRouter.
type MockPaymentRouter struct {
	mock.Mock
}

func (m *MockPaymentRouter) Route(ctx context.Context, order *model.Order, method model.PaymentMethod) (*model.RoutingResult, error) {
	args := m.Called(ctx, order, method)
	if fn, ok := args.Get(0).(func(context.Context, *model.Order, model.PaymentMethod) (*model.RoutingResult, error)); ok {
		return fn(ctx, order, method)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoutingResult), args.Error(1)
}

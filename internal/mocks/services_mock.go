// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) Fulfill(ctx context.Context, order model.OutboundOrder) (*model.FulfillmentResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FulfillmentResult), args.Error(1)
}

type MockRestockService struct {
	mock.Mock
}

func (m *MockRestockService) Plan(ctx context.Context, warehouseID int) (*model.InboundManifest, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InboundManifest), args.Error(1)
}

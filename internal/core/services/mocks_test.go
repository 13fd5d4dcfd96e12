package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockLogRepo struct {
	mock.Mock
}

func (m *MockLogRepo) Create(ctx context.Context, item *domain.LoggedItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockLogRepo) Update(ctx context.Context, item *domain.LoggedItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockLogRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLogRepo) GetByID(ctx context.Context, id string) (*domain.LoggedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoggedItem), args.Error(1)
}

func (m *MockLogRepo) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoggedItem), args.Error(1)
}

func (m *MockLogRepo) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.LoggedItem, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoggedItem), args.Error(1)
}

func (m *MockLogRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.LoggedItem, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoggedItem), args.Error(1)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetDaySummary(ctx context.Context, userID string, day time.Time) (*domain.DaySummary, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySummary), args.Error(1)
}

func (m *MockSummaryCache) SetDaySummary(ctx context.Context, userID string, day time.Time, summary *domain.DaySummary) error {
	return m.Called(ctx, userID, day, summary).Error(0)
}

func (m *MockSummaryCache) InvalidateDay(ctx context.Context, userID string, day time.Time) error {
	return m.Called(ctx, userID, day).Error(0)
}

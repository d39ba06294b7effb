package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/rituday/internal/domain/entity"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Put(ctx context.Context, r *entity.Ritual) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockIndexer) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockIndexer) Search(ctx context.Context, q string, size int) ([]entity.Ritual, error) {
	args := m.Called(ctx, q, size)
	list, _ := args.Get(0).([]entity.Ritual)
	return list, args.Error(1)
}

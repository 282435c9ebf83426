package secrets

import (
	"context"

	"github.com/hashicorp/vault-client-go"
	"github.com/stretchr/testify/mock"
)

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Read(ctx context.Context, path string, options ...vault.RequestOption) (*vault.Response[map[string]interface{}], error) {
	args := m.Called(ctx, path)
	resp, _ := args.Get(0).(*vault.Response[map[string]interface{}])
	return resp, args.Error(1)
}

package whalealert

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type blockchainMock struct {
	mock.Mock
}

func (m *blockchainMock) BlockByHeight(ctx context.Context, height uint64) (*Block, error) {
	args := m.Called(ctx, height)

	var block *Block
	if v := args.Get(0); v != nil {
		block = v.(*Block)
	}
	return block, args.Error(1)
}

func (m *blockchainMock) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	args := m.Called(ctx, hash)

	var tx *Transaction
	if v := args.Get(0); v != nil {
		tx = v.(*Transaction)
	}
	return tx, args.Error(1)
}

type rateProviderMock struct {
	mock.Mock
}

func (m *rateProviderMock) Rate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) AlertLargeTransaction(ctx context.Context, alert Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

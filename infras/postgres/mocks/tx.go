package mocks

import (
	"context"
	"myfunzone/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type txerImpl struct {
}

// WithTx implements postgres.Txer. The callback runs with a nil transaction;
// repository mocks accept any tx argument.
func (t *txerImpl) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTxer() postgres.Txer {
	return &txerImpl{}
}

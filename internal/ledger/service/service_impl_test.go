package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/geotoll/internal/ledger/domain"
	"github.com/smallbiznis/geotoll/internal/ledger/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Transaction{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db, node
}

func seedTransactions(t *testing.T, db *gorm.DB, node *snowflake.Node, userID snowflake.ID, n int) {
	t.Helper()
	base := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		txn := domain.Transaction{
			ID:        node.Generate(),
			UserID:    userID,
			ZoneID:    node.Generate(),
			Amount:    decimal.RequireFromString("2.50"),
			RateUnit:  "hour",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&txn).Error)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, db, node := newTestService(t)
	userID := node.Generate()
	seedTransactions(t, db, node, userID, 3)

	resp, err := svc.List(context.Background(), domain.ListTransactionsRequest{
		UserID: userID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 3)
	assert.False(t, resp.HasMore)

	for i := 1; i < len(resp.Transactions); i++ {
		assert.True(t, resp.Transactions[i].CreatedAt.Before(resp.Transactions[i-1].CreatedAt),
			"transactions must be ordered newest first")
	}
}

func TestListPagination(t *testing.T) {
	svc, db, node := newTestService(t)
	userID := node.Generate()
	seedTransactions(t, db, node, userID, 5)

	first, err := svc.List(context.Background(), domain.ListTransactionsRequest{
		UserID:   userID.String(),
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, first.Transactions, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(context.Background(), domain.ListTransactionsRequest{
		UserID:    userID.String(),
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Transactions, 2)

	// No overlap between pages.
	seen := map[int64]bool{}
	for _, txn := range first.Transactions {
		seen[txn.ID.Int64()] = true
	}
	for _, txn := range second.Transactions {
		assert.False(t, seen[txn.ID.Int64()])
	}
}

func TestListScopedToUser(t *testing.T) {
	svc, db, node := newTestService(t)
	alice := node.Generate()
	bob := node.Generate()
	seedTransactions(t, db, node, alice, 2)
	seedTransactions(t, db, node, bob, 1)

	resp, err := svc.List(context.Background(), domain.ListTransactionsRequest{
		UserID: alice.String(),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 2)
}

func TestListInvalidInput(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.List(context.Background(), domain.ListTransactionsRequest{UserID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.List(context.Background(), domain.ListTransactionsRequest{
		UserID:    node.Generate().String(),
		PageToken: "%%%not-a-token%%%",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweet-shop-api/internal/domain"
)

func seedOrders(t *testing.T) *fakePurchaseRepo {
	t.Helper()
	repo := newFakePurchaseRepo()
	repo.addSweet(testSweet("s1", "Fudge", "2.50", 10))
	repo.addSweet(testSweet("s2", "Candy Cane", "1.00", 10))
	repo.addProfile(&domain.Profile{ID: "u1", Email: "alice@example.com", FullName: "Alice", Role: domain.RoleUser})
	repo.addProfile(&domain.Profile{ID: "u2", Email: "bob@example.com", FullName: "Bob", Role: domain.RoleUser})

	_, err := repo.Record(context.Background(), "u1", "s1", 3) // 7.50
	require.NoError(t, err)
	_, err = repo.Record(context.Background(), "u2", "s2", 3) // 3.00
	require.NoError(t, err)
	return repo
}

func TestOrderService_ListAll_Summary(t *testing.T) {
	svc := NewOrderService(seedOrders(t), zap.NewNop())

	rows, sum, err := svc.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, sum.TotalOrders)
	assert.True(t, sum.TotalRevenue.Equal(mustDecimal("10.50")), "revenue = sum of total_price, got %s", sum.TotalRevenue)
	// 倒序：后下的单在前
	assert.Equal(t, "s2", rows[0].SweetID)
}

func TestOrderService_ListAll_SearchByBuyerAndSweet(t *testing.T) {
	svc := NewOrderService(seedOrders(t), zap.NewNop())

	rows, sum, err := svc.ListAll(context.Background(), "ALICE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].SweetID)
	assert.Equal(t, 2, sum.TotalOrders, "search must not shrink the revenue summary")
	assert.True(t, sum.TotalRevenue.Equal(mustDecimal("10.50")))

	rows, _, err = svc.ListAll(context.Background(), "candy")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s2", rows[0].SweetID)

	rows, _, err = svc.ListAll(context.Background(), "no-such-thing")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// 商品删除后订单仍然渲染：快照字段在，sweet_available=false
func TestOrderService_DeletedSweetStillRendered(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.addSweet(testSweet("s1", "Fudge", "2.50", 10))
	repo.addProfile(&domain.Profile{ID: "u1", Email: "alice@example.com", FullName: "Alice"})
	_, err := repo.Record(context.Background(), "u1", "s1", 1)
	require.NoError(t, err)

	repo.mu.Lock()
	delete(repo.sweets, "s1")
	repo.mu.Unlock()

	svc := NewOrderService(repo, zap.NewNop())
	rows, _, err := svc.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.False(t, rows[0].SweetAvailable())
	assert.Equal(t, "Fudge", rows[0].SweetName, "snapshot name survives deletion")
	assert.True(t, rows[0].TotalPrice.Equal(mustDecimal("2.50")))

	// 删除后的商品名仍可被搜索命中（靠快照）
	hits, _, err := svc.ListAll(context.Background(), "fudge")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

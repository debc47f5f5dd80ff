package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository that mirrors the store's conditional
// upsert semantics, including the atomic increment under concurrency.
type memRepo struct {
	mu        sync.Mutex
	lines     map[[2]string]Line
	upsertErr error
	listErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{lines: make(map[[2]string]Line)}
}

func (m *memRepo) Upsert(_ context.Context, line Line) (Line, bool, error) {
	if m.upsertErr != nil {
		return Line{}, false, m.upsertErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := [2]string{line.UserID, line.ProductID}
	existing, ok := m.lines[key]
	if !ok {
		m.lines[key] = line
		return line, true, nil
	}

	existing.Quantity++
	existing.ProductName = line.ProductName
	existing.Price = line.Price.Mul(decimal.NewFromInt(int64(existing.Quantity)))
	m.lines[key] = existing
	return existing, false, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]Line, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Line
	for key, line := range m.lines {
		if key[0] == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

func addRequest(price string) AddItemRequest {
	return AddItemRequest{
		UserID:      "u1",
		ProductID:   "p1",
		ProductName: "Widget",
		Price:       decimal.RequireFromString(price),
	}
}

func TestAddItem_FirstAdd(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	result, err := svc.AddItem(context.Background(), addRequest("9.99"))
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, 1, result.Line.Quantity)
	assert.True(t, decimal.RequireFromString("9.99").Equal(result.Line.Price))
	assert.Equal(t, "Added new product Widget to cart", result.Message)
}

func TestAddItem_RepeatAddsAccumulateRunningTotal(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	_, err := svc.AddItem(context.Background(), addRequest("9.99"))
	require.NoError(t, err)

	second, err := svc.AddItem(context.Background(), addRequest("9.99"))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, 2, second.Line.Quantity)
	assert.True(t, decimal.RequireFromString("19.98").Equal(second.Line.Price))
	assert.Equal(t, "Updated quantity to 2 for Widget", second.Message)

	third, err := svc.AddItem(context.Background(), addRequest("9.99"))
	require.NoError(t, err)
	assert.Equal(t, 3, third.Line.Quantity)
	assert.True(t, decimal.RequireFromString("29.97").Equal(third.Line.Price))
}

func TestAddItem_DistinctProductsStaySeparate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	req := addRequest("5.00")
	_, err := svc.AddItem(context.Background(), req)
	require.NoError(t, err)

	req.ProductID = "p2"
	req.ProductName = "Gadget"
	result, err := svc.AddItem(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Created)
	lines, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestAddItem_ConcurrentAddsLoseNoIncrement(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	const adds = 50
	var wg sync.WaitGroup
	wg.Add(adds)
	for range adds {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), addRequest("2.50"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, adds, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("125.00").Equal(lines[0].Price))
}

func TestAddItem_RepoError(t *testing.T) {
	repo := newMemRepo()
	repo.upsertErr = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.AddItem(context.Background(), addRequest("1.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert cart line")
}

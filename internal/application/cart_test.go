package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
	"github.com/novellea/storefront-client/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingNotifier captures the user-facing messages a service emits.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func loggedInSession(t *testing.T) *session.Store {
	t.Helper()
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	require.NoError(t, sess.Login("token-abc", session.User{ID: "u1", Name: "Ananya"}))
	return sess
}

func seededCart() *domain.Cart {
	cart := &domain.Cart{
		ID:     "c1",
		UserID: "u1",
		Items: []domain.CartItem{
			{ID: "i1", BookID: "b1", Title: "The Flooded Library", Price: 300, Quantity: 1},
		},
	}
	cart.ApplyTotals()
	return cart
}

func newCartFixture(t *testing.T, seed *domain.Cart) (*application.CartService, *application.MockCartGateway, *recordingNotifier) {
	t.Helper()
	gateway := application.NewMockCartGateway(seed)
	notifier := &recordingNotifier{}
	svc := application.NewCartService(gateway, loggedInSession(t), notifier, testLogger())
	return svc, gateway, notifier
}

func TestCartService_MissingCartStartsEmpty(t *testing.T) {
	svc, _, _ := newCartFixture(t, nil)

	cart, err := svc.Cart(context.Background())

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "u1", cart.UserID, "fresh cart belongs to the session user")
	assert.Same(t, cart, svc.CachedCart())
}

func TestCartService_AddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, gateway, _ := newCartFixture(t, seededCart())

	_, err := svc.AddItem(context.Background(), "b2", 0)

	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidQuantity))
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, gateway.Calls, "invalid input never reaches the server")
}

func TestCartService_UpdateToZeroIsRemoval(t *testing.T) {
	svc, gateway, _ := newCartFixture(t, seededCart())

	cart, err := svc.UpdateItem(context.Background(), "i1", 0)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, []string{"RemoveItem"}, gateway.Calls)
}

func TestCartService_FailedMutationKeepsPreviousState(t *testing.T) {
	svc, gateway, notifier := newCartFixture(t, seededCart())

	before, err := svc.Cart(context.Background())
	require.NoError(t, err)

	gateway.AddItemFn = func(context.Context, string, int) (*domain.Cart, error) {
		return nil, errors.New("boom")
	}

	_, err = svc.AddItem(context.Background(), "b2", 1)

	require.Error(t, err)
	assert.Same(t, before, svc.CachedCart(), "failed mutation must not touch local state")
	assert.Equal(t, 1, notifier.count(), "the user hears about the failure")
	assert.False(t, svc.Updating(), "the in-flight flag clears on failure")
}

func TestCartService_TotalsRecomputedOnEveryReplace(t *testing.T) {
	svc, gateway, _ := newCartFixture(t, seededCart())

	// A response whose totals disagree with its items.
	gateway.AddItemFn = func(context.Context, string, int) (*domain.Cart, error) {
		return &domain.Cart{
			ID:    "c1",
			Items: []domain.CartItem{{ID: "i1", Price: 300, Quantity: 2}},
			Total: 1,
			Tax:   1,
		}, nil
	}

	cart, err := svc.AddItem(context.Background(), "b1", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(600), cart.Subtotal)
	assert.Equal(t, int64(0), cart.Shipping)
	assert.Equal(t, int64(108), cart.Tax)
	assert.Equal(t, int64(708), cart.Total)
}

func TestCartService_ClearResetsToEmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture(t, seededCart())

	_, err := svc.Cart(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background()))

	cached := svc.CachedCart()
	require.NotNil(t, cached)
	assert.True(t, cached.IsEmpty())
	assert.Equal(t, "u1", cached.UserID)
	assert.Zero(t, cached.Total)
}

func TestCartService_CountDegradesToZero(t *testing.T) {
	svc, gateway, _ := newCartFixture(t, seededCart())
	gateway.CartCountFn = func(context.Context) (int, error) {
		return 0, errors.New("count service down")
	}

	assert.Equal(t, 0, svc.Count(context.Background()))
}

func TestCartService_ConcurrentReadsShareOneFetch(t *testing.T) {
	svc, gateway, _ := newCartFixture(t, seededCart())

	// A slow fetch keeps the read window open long enough for every
	// caller to join the in-flight request.
	gateway.FetchCartFn = func(context.Context) (*domain.Cart, error) {
		time.Sleep(100 * time.Millisecond)
		return &domain.Cart{
			ID:    "c1",
			Items: []domain.CartItem{{ID: "i1", Price: 300, Quantity: 2}},
		}, nil
	}

	const readers = 8
	results := make([]*domain.Cart, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cart, err := svc.Cart(context.Background())
			assert.NoError(t, err)
			results[i] = cart
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"FetchCart"}, gateway.Calls, "concurrent reads share one request")
	for _, cart := range results {
		require.NotNil(t, cart)
		assert.Same(t, results[0], cart)
		assert.Equal(t, int64(708), cart.Total, "totals settle before the cart is shared")
	}
}

func TestCartService_SyncAdoptsServerCart(t *testing.T) {
	svc, _, _ := newCartFixture(t, seededCart())

	cart, err := svc.Sync(context.Background(), []domain.CartItem{
		{ID: "i9", BookID: "b9", Price: 120, Quantity: 2},
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "b9", cart.Items[0].BookID)
	assert.Equal(t, int64(240), cart.Subtotal)
	assert.Same(t, cart, svc.CachedCart())
}

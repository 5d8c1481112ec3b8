package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/novellea/storefront-client/internal/domain"
	"github.com/novellea/storefront-client/internal/session"
)

// CartService owns the authoritative in-session cart. Every mutation
// round-trips through the gateway and replaces the local cart wholesale
// with the server's copy; nothing is committed optimistically, so a
// failed mutation leaves the previous state visible.
//
// Mutations are serialized per service instance and concurrent reads are
// deduplicated, so rapid quantity clicks cannot interleave into lost
// updates.
type CartService struct {
	gateway  CartGateway
	session  *session.Store
	notifier Notifier
	logger   *slog.Logger

	mutateMu sync.Mutex
	reads    singleflight.Group

	stateMu  sync.RWMutex
	state    *domain.Cart
	updating atomic.Bool
}

func NewCartService(gateway CartGateway, sess *session.Store, notifier Notifier, logger *slog.Logger) *CartService {
	return &CartService{
		gateway:  gateway,
		session:  sess,
		notifier: notifier,
		logger:   logger,
	}
}

// Cart fetches the current cart. The cart is a lazily-materialized
// resource: a 404 from the server yields a fresh empty cart, not an
// error. Concurrent calls share one request and receive the same cart;
// totals are applied and the state published inside the shared fetch,
// so the cart is never written again once callers can see it.
func (s *CartService) Cart(ctx context.Context) (*domain.Cart, error) {
	v, err, _ := s.reads.Do("cart", func() (any, error) {
		cart, err := s.gateway.FetchCart(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Debug("no cart on server, starting empty")
				cart = s.emptyCart()
			} else {
				return nil, err
			}
		}
		s.replaceState(cart)
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddItem adds or increments a line on the server cart.
func (s *CartService) AddItem(ctx context.Context, bookID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.NewInvalidQuantityError(quantity)
	}

	return s.mutate(ctx, "could not add the book to your cart", func(ctx context.Context) (*domain.Cart, error) {
		return s.gateway.AddItem(ctx, bookID, quantity)
	})
}

// UpdateItem sets a line's quantity. A quantity resolving to zero is a
// removal, not a malformed update.
func (s *CartService) UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	return s.mutate(ctx, "could not update the item quantity", func(ctx context.Context) (*domain.Cart, error) {
		return s.gateway.UpdateItem(ctx, itemID, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, "could not remove the item from your cart", func(ctx context.Context) (*domain.Cart, error) {
		return s.gateway.RemoveItem(ctx, itemID)
	})
}

// Clear empties the server cart, then resets local state to an empty
// cart that keeps the owning user.
func (s *CartService) Clear(ctx context.Context) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.updating.Store(true)
	defer s.updating.Store(false)

	if err := s.gateway.ClearCart(ctx); err != nil {
		s.notifier.Notify(ctx, "could not clear your cart")
		return err
	}

	s.replaceState(s.emptyCart())
	return nil
}

// Sync pushes locally accumulated items (e.g. from an anonymous browse)
// to the server and adopts its merged cart.
func (s *CartService) Sync(ctx context.Context, items []domain.CartItem) (*domain.Cart, error) {
	return s.mutate(ctx, "could not sync your cart", func(ctx context.Context) (*domain.Cart, error) {
		return s.gateway.SyncCart(ctx, items)
	})
}

// Count returns the badge count. Failures degrade to zero rather than
// breaking the page.
func (s *CartService) Count(ctx context.Context) int {
	count, err := s.gateway.CartCount(ctx)
	if err != nil {
		s.logger.Warn("cart count unavailable", "error", err)
		return 0
	}
	return count
}

// CachedCart returns the last cart applied to local state without a
// network round-trip. Nil until the first successful fetch.
func (s *CartService) CachedCart() *domain.Cart {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Updating reports whether a mutation is in flight, for disabling input
// controls. Cleared on success and failure alike.
func (s *CartService) Updating() bool {
	return s.updating.Load()
}

func (s *CartService) mutate(ctx context.Context, failureMessage string, op func(ctx context.Context) (*domain.Cart, error)) (*domain.Cart, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.updating.Store(true)
	defer s.updating.Store(false)

	cart, err := op(ctx)
	if err != nil {
		s.notifier.Notify(ctx, failureMessage)
		return nil, err
	}

	s.replaceState(cart)
	return cart, nil
}

// replaceState swaps the whole cart and recomputes the derived totals.
// Totals are never edited independently of items.
func (s *CartService) replaceState(cart *domain.Cart) {
	cart.ApplyTotals()

	s.stateMu.Lock()
	s.state = cart
	s.stateMu.Unlock()
}

func (s *CartService) emptyCart() *domain.Cart {
	userID := ""
	if user, ok := s.session.User(); ok {
		userID = user.ID
	}
	return domain.NewEmptyCart(userID)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
)

// CartClient implements application.CartGateway over the cart service
// endpoints.
type CartClient struct {
	client *Client
}

func NewCartClient(client *Client) application.CartGateway {
	return &CartClient{client: client}
}

type addItemRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type syncCartRequest struct {
	Items []domain.CartItem `json:"items"`
}

type cartCountResponse struct {
	Count int `json:"count"`
}

func (c *CartClient) FetchCart(ctx context.Context) (*domain.Cart, error) {
	cart, err := do[any, domain.Cart](c.client, ctx, http.MethodGet, "/cart", nil, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartClient) AddItem(ctx context.Context, bookID string, quantity int) (*domain.Cart, error) {
	req := addItemRequest{BookID: bookID, Quantity: quantity}
	cart, err := do[addItemRequest, domain.Cart](c.client, ctx, http.MethodPost, "/cart/items", &req, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartClient) UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	req := updateItemRequest{Quantity: quantity}
	path := fmt.Sprintf("/cart/items/%s", itemID)
	cart, err := do[updateItemRequest, domain.Cart](c.client, ctx, http.MethodPut, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartClient) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/items/%s", itemID)
	cart, err := do[any, domain.Cart](c.client, ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartClient) ClearCart(ctx context.Context) error {
	_, err := do[any, struct{}](c.client, ctx, http.MethodDelete, "/cart", nil, "")
	return err
}

func (c *CartClient) SyncCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error) {
	req := syncCartRequest{Items: items}
	cart, err := do[syncCartRequest, domain.Cart](c.client, ctx, http.MethodPost, "/cart/sync", &req, "")
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartClient) CartCount(ctx context.Context) (int, error) {
	resp, err := do[any, cartCountResponse](c.client, ctx, http.MethodGet, "/cart/count", nil, "")
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

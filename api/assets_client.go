package api

import (
	"context"
	"net/http"
)

// Asset listings. All five domains are plain reads served in the same shape;
// the backend decides what an anonymous caller may see.

func (c *Client) GoldAssets(ctx context.Context) ([]Asset, error) {
	return c.listAssets(ctx, "/gold/assets")
}

func (c *Client) CryptocurrencyAssets(ctx context.Context) ([]Asset, error) {
	return c.listAssets(ctx, "/cryptocurrency/assets")
}

func (c *Client) RealEstateAssets(ctx context.Context) ([]Asset, error) {
	return c.listAssets(ctx, "/buy-sell/real-estate/assets")
}

func (c *Client) VehicleAssets(ctx context.Context) ([]Asset, error) {
	return c.listAssets(ctx, "/buy-sell/vehicles/assets")
}

func (c *Client) PropertyAssets(ctx context.Context) ([]Asset, error) {
	return c.listAssets(ctx, "/buy-sell/properties/assets")
}

func (c *Client) listAssets(ctx context.Context, path string) ([]Asset, error) {
	token, err := c.implicitToken()
	if err != nil {
		return nil, err
	}

	var assets []Asset
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &assets); err != nil {
		return nil, err
	}

	return assets, nil
}

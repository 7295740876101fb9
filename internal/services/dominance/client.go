package dominance

import (
	"context"
	"fmt"
	"time"

	domrepo "BetaPulse/internal/domain/repository"
	xhttp "BetaPulse/pkg/http"
)

// Client reads the BTC-dominance share of total market cap from an
// external market-overview endpoint (CoinGecko /global shape).
type Client struct {
	url    string
	client *xhttp.Client
}

// New builds a dominance client. url points at the market-overview
// endpoint; timeout bounds each request.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:    url,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type globalResponse struct {
	Data struct {
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}

// BTCDominance fetches the current BTC market-cap percentage. Any failure
// is returned to the caller, which substitutes the configured fallback.
func (c *Client) BTCDominance(ctx context.Context) (float64, error) {
	if c.url == "" {
		return 0, fmt.Errorf("dominance url not configured")
	}

	var gr globalResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.url,
	}, &gr)
	if err != nil {
		return 0, fmt.Errorf("get market overview: %w", err)
	}

	btc, ok := gr.Data.MarketCapPercentage["btc"]
	if !ok {
		return 0, fmt.Errorf("market overview response missing btc share")
	}
	return btc, nil
}

var _ domrepo.DominanceSource = (*Client)(nil)

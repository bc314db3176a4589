package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/core/ports"
)

// MenuCatalog implements ports.MenuCatalog against the restaurant service.
type MenuCatalog struct {
	client client
}

func NewMenuCatalog(baseURL string, timeout time.Duration) *MenuCatalog {
	return &MenuCatalog{client: newClient("restaurant service", baseURL, timeout)}
}

type menuItem struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (m *MenuCatalog) GetItemsByIDs(ctx context.Context, ids []int64) ([]ports.MenuItem, error) {
	if len(ids) == 0 {
		return []ports.MenuItem{}, nil
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	query := url.Values{"ids": []string{strings.Join(parts, ",")}}

	var items []menuItem
	if err := m.client.do(ctx, http.MethodGet, "/api/restaurants/internal/menu-items?"+query.Encode(), nil, &items); err != nil {
		return nil, err
	}

	result := make([]ports.MenuItem, 0, len(items))
	for _, item := range items {
		result = append(result, ports.MenuItem{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	return result, nil
}

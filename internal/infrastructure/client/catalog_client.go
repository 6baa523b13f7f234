package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/forgeline/rfq-service/internal/domain"
)

// HTTPCatalogClient resolves items from the catalog service.
type HTTPCatalogClient struct {
	Address string
	client  *http.Client
}

func NewHTTPCatalogClient(address string) *HTTPCatalogClient {
	return &HTTPCatalogClient{
		Address: address,
		client:  http.DefaultClient,
	}
}

type itemResponse struct {
	ID          string `json:"id"`
	FulfillerID string `json:"fulfiller_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
}

func (c *HTTPCatalogClient) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/items/%s", c.Address, itemID), nil)
	if err != nil {
		return nil, err
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var item itemResponse
		if err := json.Unmarshal(responseBodyBytes, &item); err != nil {
			return nil, err
		}
		return &domain.Item{
			ID:          item.ID,
			FulfillerID: item.FulfillerID,
			Name:        item.Name,
			Status:      domain.ItemStatus(item.Status),
		}, nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return nil, fmt.Errorf("catalog service returned %d", response.StatusCode)
	}
	return nil, fmt.Errorf("catalog service: %s", errResponse.Error)
}

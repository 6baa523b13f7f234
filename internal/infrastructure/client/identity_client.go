package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/forgeline/rfq-service/internal/domain"
)

// HTTPIdentityClient resolves parties from the identity service.
type HTTPIdentityClient struct {
	Address string
	client  *http.Client
}

func NewHTTPIdentityClient(address string) *HTTPIdentityClient {
	return &HTTPIdentityClient{
		Address: address,
		client:  http.DefaultClient,
	}
}

type partyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPIdentityClient) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/parties/%s", c.Address, partyID), nil)
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
		return nil, fmt.Errorf("%w: party %s", domain.ErrNotFound, partyID)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var party partyResponse
		if err := json.Unmarshal(responseBodyBytes, &party); err != nil {
			return nil, err
		}
		return &domain.Party{
			ID:   party.ID,
			Name: party.Name,
			Role: domain.PartyRole(party.Role),
		}, nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return nil, fmt.Errorf("identity service returned %d", response.StatusCode)
	}
	return nil, fmt.Errorf("identity service: %s", errResponse.Error)
}

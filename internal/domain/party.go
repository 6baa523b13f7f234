package domain

import "context"

type PartyRole string

const (
	RoleRequester PartyRole = "REQUESTER"
	RoleFulfiller PartyRole = "FULFILLER"
)

// Party is the identity service's view of a company. Used for authorization
// checks and message text only, never for business logic.
type Party struct {
	ID   string
	Name string
	Role PartyRole
}

type ItemStatus string

const (
	ItemActive   ItemStatus = "ACTIVE"
	ItemInactive ItemStatus = "INACTIVE"
)

// Item is the catalog service's view of a product. An item must be active to
// originate a new negotiation.
type Item struct {
	ID          string
	FulfillerID string
	Name        string
	Status      ItemStatus
}

type IdentityClient interface {
	GetParty(ctx context.Context, partyID string) (*Party, error)
}

type CatalogClient interface {
	GetItem(ctx context.Context, itemID string) (*Item, error)
}

// ABOUTME: Store interface and data types for carbon credit persistence
// ABOUTME: Defines the CarbonCredit record, status lifecycle, and list filters

package credits

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested credit does not exist.
var ErrNotFound = errors.New("carbon credit not found")

// ErrNotRetirable is returned when retiring a credit that is not verified.
var ErrNotRetirable = errors.New("only verified credits can be retired")

// Credit status values.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusRetired  = "retired"
)

// Location is the geographic position of a credited parcel.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	GeoHash   string  `json:"geo_hash,omitempty"`
}

// CarbonCredit is one credited parcel with its verification outcome and,
// when minted, its backing NFT reference.
type CarbonCredit struct {
	ID                  string
	ProjectName         string
	ProjectDescription  string
	OwnerID             string
	Acres               float64
	Location            Location
	ForestCoverage      float64
	Confidence          float64
	CarbonSequestration float64
	Status              string
	TokenID             string
	SerialNumber        *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Filter narrows ListCredits results. Zero values match everything.
type Filter struct {
	OwnerID string
	Status  string
}

// Store defines carbon credit persistence.
type Store interface {
	CreateCredit(ctx context.Context, credit *CarbonCredit) error
	GetCredit(ctx context.Context, id string) (*CarbonCredit, error)
	ListCredits(ctx context.Context, filter Filter) ([]*CarbonCredit, error)
	UpdateCredit(ctx context.Context, credit *CarbonCredit) error
	Close() error
}

// ABOUTME: Carbon credit lifecycle orchestration across verifier, minter, store
// ABOUTME: Handles create, re-verify, update, and retire flows

package credits

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terraledger/terraledger/internal/token"
	"github.com/terraledger/terraledger/internal/verifier"
)

// Service orchestrates the carbon credit lifecycle.
type Service struct {
	store    Store
	verifier verifier.Verifier
	tokens   token.Service
	logger   *slog.Logger
}

// NewService creates a credit service.
func NewService(store Store, v verifier.Verifier, tokens token.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		verifier: v,
		tokens:   tokens,
		logger:   logger.With("component", "credits"),
	}
}

// CreateRequest carries the fields needed to create a credit.
type CreateRequest struct {
	ProjectName        string
	ProjectDescription string
	OwnerID            string
	Acres              float64
	Location           Location
}

// Create verifies the parcel, computes its sequestration estimate, mints
// an NFT when verification passes, and persists the credit. Minting is
// best-effort: a mint failure leaves a verified credit without token
// information rather than failing the creation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CarbonCredit, error) {
	v, err := s.verifier.VerifyForest(ctx, req.Location.Latitude, req.Location.Longitude)
	if err != nil {
		return nil, fmt.Errorf("verifying forest: %w", err)
	}

	now := time.Now().UTC()
	credit := &CarbonCredit{
		ID:                  uuid.New().String(),
		ProjectName:         req.ProjectName,
		ProjectDescription:  req.ProjectDescription,
		OwnerID:             req.OwnerID,
		Acres:               req.Acres,
		Location:            req.Location,
		ForestCoverage:      v.ForestCoverage,
		Confidence:          v.Confidence,
		CarbonSequestration: verifier.CarbonSequestration(req.Acres, v.ForestCoverage),
		Status:              StatusRejected,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if v.Verified {
		credit.Status = StatusVerified
		s.mint(ctx, credit)
	}

	if err := s.store.CreateCredit(ctx, credit); err != nil {
		return nil, fmt.Errorf("storing credit: %w", err)
	}

	s.logger.Info("carbon credit created",
		"credit_id", credit.ID,
		"project", credit.ProjectName,
		"status", credit.Status,
		"forest_coverage", credit.ForestCoverage,
	)
	return credit, nil
}

// mint creates the NFT token and mints the credit's serial, attaching
// the references on success.
func (s *Service) mint(ctx context.Context, credit *CarbonCredit) {
	tok, err := s.tokens.CreateNFTToken(ctx,
		"TerraLedger Carbon - "+credit.ProjectName,
		"TLC",
		"Carbon credits for "+credit.ProjectName,
	)
	if err != nil {
		s.logger.Warn("NFT token creation failed", "credit_id", credit.ID, "error", err)
		return
	}

	mint, err := s.tokens.MintCarbonNFT(ctx, tok.ID, map[string]any{
		"credit_id":            credit.ID,
		"acres":                credit.Acres,
		"latitude":             credit.Location.Latitude,
		"longitude":            credit.Location.Longitude,
		"geo_hash":             credit.Location.GeoHash,
		"project_name":         credit.ProjectName,
		"forest_coverage":      credit.ForestCoverage,
		"carbon_sequestration": credit.CarbonSequestration,
	})
	if err != nil {
		s.logger.Warn("NFT mint failed", "credit_id", credit.ID, "token_id", tok.ID, "error", err)
		return
	}

	credit.TokenID = tok.ID
	credit.SerialNumber = &mint.SerialNumber
}

// Get retrieves a credit by id.
func (s *Service) Get(ctx context.Context, id string) (*CarbonCredit, error) {
	return s.store.GetCredit(ctx, id)
}

// List returns credits matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*CarbonCredit, error) {
	return s.store.ListCredits(ctx, filter)
}

// UpdateRequest carries optional field updates; nil means unchanged.
type UpdateRequest struct {
	ProjectName        *string
	ProjectDescription *string
}

// Update applies the provided field changes to an existing credit.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*CarbonCredit, error) {
	credit, err := s.store.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProjectName != nil {
		credit.ProjectName = *req.ProjectName
	}
	if req.ProjectDescription != nil {
		credit.ProjectDescription = *req.ProjectDescription
	}
	credit.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCredit(ctx, credit); err != nil {
		return nil, err
	}
	return credit, nil
}

// Verify re-runs verification for an existing credit, updating its
// coverage, sequestration estimate, and status.
func (s *Service) Verify(ctx context.Context, id string) (*CarbonCredit, error) {
	credit, err := s.store.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := s.verifier.VerifyForest(ctx, credit.Location.Latitude, credit.Location.Longitude)
	if err != nil {
		return nil, fmt.Errorf("verifying forest: %w", err)
	}

	credit.ForestCoverage = v.ForestCoverage
	credit.Confidence = v.Confidence
	credit.CarbonSequestration = verifier.CarbonSequestration(credit.Acres, v.ForestCoverage)
	if v.Verified {
		credit.Status = StatusVerified
	} else {
		credit.Status = StatusRejected
	}
	credit.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCredit(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info("carbon credit re-verified",
		"credit_id", credit.ID,
		"status", credit.Status,
		"forest_coverage", credit.ForestCoverage,
	)
	return credit, nil
}

// Retire marks a verified credit as retired. Credits in any other state
// cannot be retired.
func (s *Service) Retire(ctx context.Context, id string) (*CarbonCredit, error) {
	credit, err := s.store.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	if credit.Status != StatusVerified {
		return nil, ErrNotRetirable
	}

	credit.Status = StatusRetired
	credit.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCredit(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info("carbon credit retired", "credit_id", credit.ID)
	return credit, nil
}

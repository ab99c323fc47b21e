// ABOUTME: Tests for the carbon credit lifecycle service
// ABOUTME: Covers verification outcomes, minting, updates, and retirement

package credits

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraledger/terraledger/internal/token"
	"github.com/terraledger/terraledger/internal/verifier"
)

func newTestService(t *testing.T, coverage float64) *Service {
	t.Helper()
	return NewService(
		NewMemoryStore(),
		&verifier.Static{Coverage: coverage},
		token.NewMemoryService(500, nil),
		nil,
	)
}

func amazonRequest() CreateRequest {
	return CreateRequest{
		ProjectName:        "Amazon Reforestation",
		ProjectDescription: "Replanting in the western basin",
		OwnerID:            "0.0.5005",
		Acres:              100,
		Location:           Location{Latitude: -3.4653, Longitude: -62.2159},
	}
}

func TestService_Create_VerifiedMintsNFT(t *testing.T) {
	svc := newTestService(t, 0.9)

	credit, err := svc.Create(context.Background(), amazonRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusVerified, credit.Status)
	assert.InDelta(t, 0.9, credit.ForestCoverage, 1e-9)
	assert.InDelta(t, 225.0, credit.CarbonSequestration, 1e-9)
	assert.Equal(t, "0.0.500", credit.TokenID)
	require.NotNil(t, credit.SerialNumber)
	assert.Equal(t, int64(1), *credit.SerialNumber)
}

func TestService_Create_RejectedSkipsMinting(t *testing.T) {
	svc := newTestService(t, 0.3)

	credit, err := svc.Create(context.Background(), amazonRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, credit.Status)
	assert.Empty(t, credit.TokenID)
	assert.Nil(t, credit.SerialNumber)
}

func TestService_Create_VerifierFailure(t *testing.T) {
	svc := NewService(
		NewMemoryStore(),
		&verifier.Static{Err: errors.New("imagery unavailable")},
		token.NewMemoryService(500, nil),
		nil,
	)

	_, err := svc.Create(context.Background(), amazonRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imagery unavailable")
}

// failingMinter verifies that a mint failure does not fail creation.
type failingMinter struct{}

func (failingMinter) CreateNFTToken(ctx context.Context, name, symbol, memo string) (*token.Token, error) {
	return nil, errors.New("token service down")
}

func (failingMinter) MintCarbonNFT(ctx context.Context, tokenID string, metadata map[string]any) (*token.Mint, error) {
	return nil, errors.New("token service down")
}

func TestService_Create_MintFailureIsNonFatal(t *testing.T) {
	svc := NewService(NewMemoryStore(), &verifier.Static{Coverage: 0.9}, failingMinter{}, nil)

	credit, err := svc.Create(context.Background(), amazonRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, credit.Status)
	assert.Empty(t, credit.TokenID)
}

func TestService_List_Filters(t *testing.T) {
	svc := newTestService(t, 0.9)
	ctx := context.Background()

	first, err := svc.Create(ctx, amazonRequest())
	require.NoError(t, err)

	other := amazonRequest()
	other.OwnerID = "0.0.7"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	byOwner, err := svc.List(ctx, Filter{OwnerID: "0.0.5005"})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, first.ID, byOwner[0].ID)

	verified, err := svc.List(ctx, Filter{Status: StatusVerified})
	require.NoError(t, err)
	assert.Len(t, verified, 2)

	retired, err := svc.List(ctx, Filter{Status: StatusRetired})
	require.NoError(t, err)
	assert.Empty(t, retired)
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t, 0.9)
	ctx := context.Background()

	credit, err := svc.Create(ctx, amazonRequest())
	require.NoError(t, err)

	name := "Amazon Reforestation Phase II"
	updated, err := svc.Update(ctx, credit.ID, UpdateRequest{ProjectName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.ProjectName)
	assert.Equal(t, credit.ProjectDescription, updated.ProjectDescription)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Verify_UpdatesStatus(t *testing.T) {
	store := NewMemoryStore()
	v := &verifier.Static{Coverage: 0.9}
	svc := NewService(store, v, token.NewMemoryService(500, nil), nil)
	ctx := context.Background()

	credit, err := svc.Create(ctx, amazonRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, credit.Status)

	// The forest degraded since the last check.
	v.Coverage = 0.2
	reverified, err := svc.Verify(ctx, credit.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, reverified.Status)
	assert.InDelta(t, 0.2, reverified.ForestCoverage, 1e-9)
	assert.InDelta(t, 50.0, reverified.CarbonSequestration, 1e-9)
}

func TestService_Retire(t *testing.T) {
	svc := newTestService(t, 0.9)
	ctx := context.Background()

	credit, err := svc.Create(ctx, amazonRequest())
	require.NoError(t, err)

	retired, err := svc.Retire(ctx, credit.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRetired, retired.Status)

	// A retired credit cannot be retired again.
	_, err = svc.Retire(ctx, credit.ID)
	assert.ErrorIs(t, err, ErrNotRetirable)
}

func TestService_Retire_RejectedCredit(t *testing.T) {
	svc := newTestService(t, 0.1)
	ctx := context.Background()

	credit, err := svc.Create(ctx, amazonRequest())
	require.NoError(t, err)

	_, err = svc.Retire(ctx, credit.ID)
	assert.ErrorIs(t, err, ErrNotRetirable)
}

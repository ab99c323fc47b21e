// ABOUTME: Tests for the in-memory NFT token service
// ABOUTME: Covers token id assignment and per-token serial numbering

package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryService_CreateNFTToken(t *testing.T) {
	s := NewMemoryService(500, nil)
	ctx := context.Background()

	tok, err := s.CreateNFTToken(ctx, "TerraLedger Carbon - Amazon", "TLC", "Carbon credits for Amazon")
	require.NoError(t, err)
	assert.Equal(t, "0.0.500", tok.ID)
	assert.Equal(t, "TLC", tok.Symbol)

	next, err := s.CreateNFTToken(ctx, "Other", "TLC", "")
	require.NoError(t, err)
	assert.Equal(t, "0.0.501", next.ID)
}

func TestMemoryService_MintCarbonNFT_SequentialSerials(t *testing.T) {
	s := NewMemoryService(500, nil)
	ctx := context.Background()

	tok, err := s.CreateNFTToken(ctx, "TerraLedger Carbon", "TLC", "")
	require.NoError(t, err)

	first, err := s.MintCarbonNFT(ctx, tok.ID, map[string]any{"credit_id": "c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.SerialNumber)

	second, err := s.MintCarbonNFT(ctx, tok.ID, map[string]any{"credit_id": "c2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.SerialNumber)
}

func TestMemoryService_MintCarbonNFT_UnknownToken(t *testing.T) {
	s := NewMemoryService(500, nil)

	_, err := s.MintCarbonNFT(context.Background(), "0.0.9999", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

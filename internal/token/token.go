// ABOUTME: Token service collaborator boundary for carbon credit NFTs
// ABOUTME: Defines creation/minting contracts plus an in-memory implementation

package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrTokenNotFound indicates a mint targeted an unknown token.
var ErrTokenNotFound = errors.New("token not found")

// Token describes a created NFT token class.
type Token struct {
	ID     string
	Name   string
	Symbol string
	Memo   string
}

// Mint is the acknowledgement of a minted NFT serial.
type Mint struct {
	TokenID      string
	SerialNumber int64
	Metadata     map[string]any
}

// Service creates NFT token classes and mints serials against them. Real
// minting happens on the external ledger; implementations here stand in
// at the same boundary.
type Service interface {
	CreateNFTToken(ctx context.Context, name, symbol, memo string) (*Token, error)
	MintCarbonNFT(ctx context.Context, tokenID string, metadata map[string]any) (*Mint, error)
}

// MemoryService is an in-process Service assigning 0.0.<n> token ids and
// sequential serial numbers per token.
type MemoryService struct {
	mu        sync.Mutex
	nextToken uint64
	tokens    map[string]*Token
	serials   map[string]int64
	logger    *slog.Logger
}

// NewMemoryService creates an empty in-memory token service. Token
// numbering starts at firstTokenNum.
func NewMemoryService(firstTokenNum uint64, logger *slog.Logger) *MemoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryService{
		nextToken: firstTokenNum,
		tokens:    make(map[string]*Token),
		serials:   make(map[string]int64),
		logger:    logger.With("component", "token"),
	}
}

// CreateNFTToken registers a new token class.
func (s *MemoryService) CreateNFTToken(ctx context.Context, name, symbol, memo string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tok := &Token{
		ID:     fmt.Sprintf("0.0.%d", s.nextToken),
		Name:   name,
		Symbol: symbol,
		Memo:   memo,
	}
	s.nextToken++
	s.tokens[tok.ID] = tok

	s.logger.Info("NFT token created", "token_id", tok.ID, "name", name, "symbol", symbol)
	return tok, nil
}

// MintCarbonNFT mints the next serial of an existing token.
func (s *MemoryService) MintCarbonNFT(ctx context.Context, tokenID string, metadata map[string]any) (*Mint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[tokenID]; !ok {
		return nil, fmt.Errorf("minting on %s: %w", tokenID, ErrTokenNotFound)
	}

	s.serials[tokenID]++
	m := &Mint{
		TokenID:      tokenID,
		SerialNumber: s.serials[tokenID],
		Metadata:     metadata,
	}

	s.logger.Info("carbon NFT minted", "token_id", tokenID, "serial_number", m.SerialNumber)
	return m, nil
}

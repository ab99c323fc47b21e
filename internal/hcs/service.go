// ABOUTME: Topic Manager and Agent Directory for the HCS-10 protocol layer
// ABOUTME: Creates topics, submits envelopes, and announces on the registry

package hcs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/terraledger/terraledger/internal/ledger"
)

// DefaultTopicTTL is the advertised time-to-live encoded in topic memos
// when the configuration does not override it.
const DefaultTopicTTL = 60

// Config carries the agent's identity and network settings. All fields
// are fixed at process start.
type Config struct {
	// OperatorID is the agent's ledger account identifier.
	OperatorID string

	// Network names the ledger network, e.g. "testnet" or "mainnet".
	Network string

	// RegistryTopicID is the well-known shared registry topic. Empty
	// means registration is skipped.
	RegistryTopicID ledger.TopicID

	// TopicTTL is the time-to-live in seconds encoded in topic memos.
	// Zero means DefaultTopicTTL.
	TopicTTL int
}

// Service coordinates all HCS-10 operations against the ledger. The only
// mutable state is the agent identity installed once by
// InitializeAgentTopics; everything else is read-only configuration.
type Service struct {
	client ledger.Client
	cfg    Config
	logger *slog.Logger

	mu    sync.RWMutex
	agent *Agent
}

// NewService creates a Service. client may be nil when no ledger
// credentials are configured; every operation then fails with
// ErrClientNotInitialized without attempting network I/O.
func NewService(client ledger.Client, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopicTTL == 0 {
		cfg.TopicTTL = DefaultTopicTTL
	}
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger.With("component", "hcs"),
	}
}

// ttl returns the configured topic time-to-live.
func (s *Service) ttl() int { return s.cfg.TopicTTL }

// checkClient guards every ledger-facing operation.
func (s *Service) checkClient() error {
	if s.client == nil {
		return ErrClientNotInitialized
	}
	return nil
}

// CreateTopic creates a topic on the ledger with the given memo fixed at
// creation time. The memo must already be encoded; keys may be nil.
func (s *Service) CreateTopic(ctx context.Context, memo string, adminKey, submitKey ledger.Key) (ledger.TopicID, error) {
	if err := s.checkClient(); err != nil {
		return "", err
	}

	topicID, err := s.client.CreateTopic(ctx, memo, adminKey, submitKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTopicCreateFailed, err)
	}

	s.logger.Info("topic created", "topic_id", topicID, "memo", memo)
	return topicID, nil
}

// SubmitMessage encodes the envelope and submits it to the topic with the
// given transaction memo. The receipt carries the per-topic sequence
// number the ledger assigned, which is the sole ordering key within the
// topic.
func (s *Service) SubmitMessage(ctx context.Context, topicID ledger.TopicID, env *Envelope, txMemo string) (*ledger.Receipt, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}

	payload, err := env.Encode()
	if err != nil {
		return nil, err
	}

	receipt, err := s.client.SubmitMessage(ctx, topicID, payload, txMemo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	s.logger.Info("message submitted",
		"topic_id", topicID,
		"operation", env.Operation,
		"sequence_number", receipt.SequenceNumber,
	)
	return receipt, nil
}

// RegisterResult reports the outcome of a registry announcement.
type RegisterResult struct {
	// Skipped is true when no registry topic is configured; the
	// announcement is then a successful no-op.
	Skipped bool

	Receipt *ledger.Receipt
}

// Register announces the agent on the shared registry topic. Registration
// is best-effort by design: a missing registry topic is a successful
// skip, and submission failures are the caller's to downgrade.
func (s *Service) Register(ctx context.Context) (*RegisterResult, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}
	if s.cfg.RegistryTopicID == "" {
		s.logger.Debug("no registry topic configured, skipping registration")
		return &RegisterResult{Skipped: true}, nil
	}

	env := NewRegisterEnvelope(s.cfg.OperatorID)
	receipt, err := s.SubmitMessage(ctx, s.cfg.RegistryTopicID, env, TransactionMemo(OpRegister))
	if err != nil {
		return nil, err
	}

	s.logger.Info("agent registered",
		"registry_topic_id", s.cfg.RegistryTopicID,
		"operator_id", s.cfg.OperatorID,
	)
	return &RegisterResult{Receipt: receipt}, nil
}

// Agent returns the identity installed by InitializeAgentTopics, or nil
// before initialization.
func (s *Service) Agent() *Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent
}

// Status is a read-only snapshot of the agent's HCS configuration, used
// by monitoring and CLI collaborators.
type Status struct {
	OperatorID        string `json:"operator_id"`
	Network           string `json:"network"`
	InboundTopicID    string `json:"inbound_topic_id,omitempty"`
	OutboundTopicID   string `json:"outbound_topic_id,omitempty"`
	RegistryTopicID   string `json:"registry_topic_id,omitempty"`
	ClientInitialized bool   `json:"client_initialized"`
}

// Status reports the current agent state. No side effects.
func (s *Service) Status() Status {
	st := Status{
		OperatorID:        s.cfg.OperatorID,
		Network:           s.cfg.Network,
		RegistryTopicID:   s.cfg.RegistryTopicID.String(),
		ClientInitialized: s.client != nil,
	}
	if agent := s.Agent(); agent != nil {
		st.InboundTopicID = agent.InboundTopicID.String()
		st.OutboundTopicID = agent.OutboundTopicID.String()
	}
	return st
}

// ABOUTME: Agent identity record and inbound/outbound topic initialization
// ABOUTME: Initialization is a constructor step producing an immutable Agent

package hcs

import (
	"context"
	"fmt"

	"github.com/terraledger/terraledger/internal/ledger"
)

// Agent is the local record of one initialized participant. Fields are
// set once by InitializeAgentTopics and never mutated: an Agent value
// existing means the service is ready for connection and registry
// operations.
type Agent struct {
	OperatorID      string
	Network         string
	InboundTopicID  ledger.TopicID
	OutboundTopicID ledger.TopicID
}

// InitializeAgentTopics creates the agent's inbound and outbound topics
// and announces the agent on the registry.
//
// The inbound topic has no submit key, so any counterparty may write
// connection requests to it; its memo carries the agent's operator id.
// The outbound topic is the agent's own activity log and gets a submit
// key so only this agent may post; its memo carries no refs.
//
// Outbound creation is never attempted if inbound creation failed, and a
// partially created inbound topic is left as-is (no rollback). The
// registry announcement is best-effort: its failure is logged and does
// not fail initialization.
func (s *Service) InitializeAgentTopics(ctx context.Context) (*Agent, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}

	adminKey, err := ledger.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating admin key: %w", err)
	}
	submitKey, err := ledger.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating submit key: %w", err)
	}

	inboundMemo := TopicMemo{
		TTL:  s.ttl(),
		Role: RoleInbound,
		Refs: []string{s.cfg.OperatorID},
	}
	inboundID, err := s.CreateTopic(ctx, inboundMemo.Encode(), adminKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating inbound topic: %w", err)
	}

	outboundMemo := TopicMemo{
		TTL:  s.ttl(),
		Role: RoleOutbound,
	}
	outboundID, err := s.CreateTopic(ctx, outboundMemo.Encode(), adminKey, submitKey)
	if err != nil {
		return nil, fmt.Errorf("creating outbound topic: %w", err)
	}

	agent := &Agent{
		OperatorID:      s.cfg.OperatorID,
		Network:         s.cfg.Network,
		InboundTopicID:  inboundID,
		OutboundTopicID: outboundID,
	}

	s.mu.Lock()
	s.agent = agent
	s.mu.Unlock()

	s.logger.Info("agent topics initialized",
		"operator_id", agent.OperatorID,
		"inbound_topic_id", inboundID,
		"outbound_topic_id", outboundID,
	)

	if _, err := s.Register(ctx); err != nil {
		s.logger.Warn("registry announcement failed", "error", err)
	}

	return agent, nil
}

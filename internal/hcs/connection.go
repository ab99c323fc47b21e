// ABOUTME: Connection negotiation and envelope dispatch over connection topics
// ABOUTME: Drives the handshake from a caller-supplied connection id to a topic

package hcs

import (
	"context"
	"fmt"

	"github.com/terraledger/terraledger/internal/ledger"
)

// ConnectionState tracks a negotiation. Only the create/announce path is
// modeled; no close operation exists in the protocol surface.
type ConnectionState int

const (
	ConnectionRequested ConnectionState = iota
	ConnectionCreated
)

// String returns the state name for logging.
func (s ConnectionState) String() string {
	if s == ConnectionCreated {
		return "created"
	}
	return "requested"
}

// Connection is a negotiated channel between two agents.
type Connection struct {
	ConnectionID      string
	ConnectionTopicID ledger.TopicID
	LocalAccountID    string
	RemoteAccountID   string
	State             ConnectionState
}

// CreateConnectionTopic negotiates a dedicated connection topic with the
// remote agent identified by remoteAccountID. connectionID is the
// caller-supplied token naming this negotiation.
//
// The topic is created with a 2-of-N threshold submit key so that further
// use requires both parties' assent. The counterparty's actual public key
// is not yet bound here: the handshake has no key-exchange step, so the
// policy lists only a threshold until a later protocol revision supplies
// the remote key.
//
// The connection moves to Created as soon as the topic exists. The
// connection_created record is then placed on this agent's own inbound
// topic where the counterparty can discover it; a failure there is logged
// and does not undo the connection.
func (s *Service) CreateConnectionTopic(ctx context.Context, remoteAccountID, connectionID string) (*Connection, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}
	agent := s.Agent()
	if agent == nil {
		return nil, ErrAgentNotReady
	}

	adminKey, err := ledger.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating admin key: %w", err)
	}
	submitKey := ledger.NewThresholdKey(2)

	memo := TopicMemo{
		Dual: true,
		TTL:  s.ttl(),
		Role: RoleConnection,
		Refs: []string{agent.InboundTopicID.String(), connectionID},
	}
	topicID, err := s.CreateTopic(ctx, memo.Encode(), adminKey, submitKey)
	if err != nil {
		return nil, fmt.Errorf("creating connection topic: %w", err)
	}

	conn := &Connection{
		ConnectionID:      connectionID,
		ConnectionTopicID: topicID,
		LocalAccountID:    agent.OperatorID,
		RemoteAccountID:   remoteAccountID,
		State:             ConnectionCreated,
	}

	env := NewConnectionCreatedEnvelope(topicID, agent.OperatorID, remoteAccountID, connectionID)
	if _, err := s.SubmitMessage(ctx, agent.InboundTopicID, env, TransactionMemo(OpConnectionCreated)); err != nil {
		s.logger.Warn("connection_created notification failed",
			"connection_id", connectionID,
			"connection_topic_id", topicID,
			"error", err,
		)
	}

	s.logger.Info("connection topic created",
		"connection_id", connectionID,
		"connection_topic_id", topicID,
		"remote_account_id", remoteAccountID,
	)
	return conn, nil
}

// SendMessage submits a plain message envelope to a connection topic.
func (s *Service) SendMessage(ctx context.Context, connectionTopicID ledger.TopicID, remoteAccountID, content string) (*ledger.Receipt, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}

	env := NewMessageEnvelope(s.cfg.OperatorID, remoteAccountID, content)
	return s.SubmitMessage(ctx, connectionTopicID, env, TransactionMemo(OpMessage))
}

// RequestTransactionApproval submits a transaction-approval request to a
// connection topic, referencing the scheduled transaction by id.
func (s *Service) RequestTransactionApproval(ctx context.Context, connectionTopicID ledger.TopicID, remoteAccountID, scheduleID, transactionData string) (*ledger.Receipt, error) {
	if err := s.checkClient(); err != nil {
		return nil, err
	}

	env := NewTransactionEnvelope(s.cfg.OperatorID, remoteAccountID, scheduleID, transactionData)
	return s.SubmitMessage(ctx, connectionTopicID, env, TransactionMemo(OpTransaction))
}

// ABOUTME: Operation codes and JSON envelope construction for HCS-10 messages
// ABOUTME: Builders produce the exact payload shape compliant agents parse

package hcs

import (
	"encoding/json"
	"fmt"

	"github.com/terraledger/terraledger/internal/ledger"
)

// Operation is the numeric operation code carried in transaction memos.
// The values are fixed by the wire format and must never be renumbered.
type Operation int

const (
	OpRegister          Operation = 0
	OpConnectionCreated Operation = 4
	OpMessage           Operation = 6
	OpTransaction       Operation = 7
)

func (op Operation) valid() bool {
	switch op {
	case OpRegister, OpConnectionCreated, OpMessage, OpTransaction:
		return true
	}
	return false
}

// String returns the operation name used in envelope payloads.
func (op Operation) String() string {
	switch op {
	case OpRegister:
		return "register"
	case OpConnectionCreated:
		return "connection_created"
	case OpMessage:
		return "message"
	case OpTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Version is the payload shape revision announced in transaction memos,
// fixed per operation.
func (op Operation) Version() int {
	switch op {
	case OpRegister:
		return 0
	case OpConnectionCreated:
		return 1
	default:
		return 3
	}
}

// Envelope is a structured message unit submitted to a topic. Fields not
// used by an operation are omitted from the JSON encoding.
type Envelope struct {
	Protocol  string `json:"p"`
	Operation string `json:"op"`

	// AccountID is set on register envelopes.
	AccountID string `json:"account_id,omitempty"`

	// OperatorID is the composite "<local>@<counterparty>" identity.
	OperatorID string `json:"operator_id,omitempty"`

	// Connection handshake fields (connection_created).
	ConnectionTopicID  string `json:"connection_topic_id,omitempty"`
	ConnectedAccountID string `json:"connected_account_id,omitempty"`
	ConnectionID       string `json:"connection_id,omitempty"`

	// ScheduleID references the scheduled transaction awaiting approval.
	ScheduleID string `json:"schedule_id,omitempty"`

	// Data carries the free-form message or transaction description.
	Data string `json:"data,omitempty"`

	// Note is the short human-readable description.
	Note string `json:"m,omitempty"`
}

// Encode serializes the envelope for submission.
func (e *Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope parses a submitted payload back into an Envelope,
// rejecting payloads that do not carry the HCS-10 protocol marker.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if e.Protocol != ProtocolMarker {
		return nil, fmt.Errorf("decoding envelope: protocol marker %q is not %q", e.Protocol, ProtocolMarker)
	}
	return &e, nil
}

// OperatorComposite builds the "<local>@<counterparty>" identity string.
func OperatorComposite(local, remote string) string {
	return local + "@" + remote
}

// NewRegisterEnvelope builds the registry announcement for an agent.
func NewRegisterEnvelope(accountID string) *Envelope {
	return &Envelope{
		Protocol:  ProtocolMarker,
		Operation: OpRegister.String(),
		AccountID: accountID,
		Note:      "Registering TerraLedger Carbon Exchange AI agent.",
	}
}

// NewConnectionCreatedEnvelope builds the handshake record placed on the
// initiator's inbound topic once a connection topic exists.
func NewConnectionCreatedEnvelope(connectionTopicID ledger.TopicID, localAccountID, remoteAccountID, connectionID string) *Envelope {
	return &Envelope{
		Protocol:           ProtocolMarker,
		Operation:          OpConnectionCreated.String(),
		ConnectionTopicID:  connectionTopicID.String(),
		ConnectedAccountID: remoteAccountID,
		OperatorID:         OperatorComposite(localAccountID, remoteAccountID),
		ConnectionID:       connectionID,
		Note:               "Connection established.",
	}
}

// NewMessageEnvelope builds a plain message envelope for a connection topic.
func NewMessageEnvelope(localAccountID, remoteAccountID, content string) *Envelope {
	return &Envelope{
		Protocol:   ProtocolMarker,
		Operation:  OpMessage.String(),
		OperatorID: OperatorComposite(localAccountID, remoteAccountID),
		Data:       content,
		Note:       "Standard communication.",
	}
}

// NewTransactionEnvelope builds a transaction-approval request envelope.
func NewTransactionEnvelope(localAccountID, remoteAccountID, scheduleID, transactionData string) *Envelope {
	return &Envelope{
		Protocol:   ProtocolMarker,
		Operation:  OpTransaction.String(),
		OperatorID: OperatorComposite(localAccountID, remoteAccountID),
		ScheduleID: scheduleID,
		Data:       transactionData,
		Note:       "For your approval.",
	}
}

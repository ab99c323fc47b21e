// ABOUTME: HTTP handlers for the HCS-10 agent communication routes
// ABOUTME: Topic creation, agent initialization, connections, and messaging

package api

import (
	"encoding/json"
	"net/http"

	"github.com/terraledger/terraledger/internal/hcs"
	"github.com/terraledger/terraledger/internal/ledger"
)

// CreateTopicRequest is the JSON request body for POST /api/v1/hcs/topics.
// Keys are public-key strings naming existing capabilities; empty means
// no key on that slot.
type CreateTopicRequest struct {
	Memo      string `json:"memo"`
	AdminKey  string `json:"admin_key,omitempty"`
	SubmitKey string `json:"submit_key,omitempty"`
}

// CreateTopicResponse is the JSON response for topic creation.
type CreateTopicResponse struct {
	TopicID string `json:"topic_id"`
	Memo    string `json:"memo"`
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Memo == "" {
		writeError(w, http.StatusBadRequest, "memo is required")
		return
	}

	var adminKey, submitKey ledger.Key
	if req.AdminKey != "" {
		adminKey = ledger.PublicKey(req.AdminKey)
	}
	if req.SubmitKey != "" {
		submitKey = ledger.PublicKey(req.SubmitKey)
	}

	topicID, err := s.hcs.CreateTopic(r.Context(), req.Memo, adminKey, submitKey)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateTopicResponse{TopicID: topicID.String(), Memo: req.Memo})
}

// SubmitMessageRequest is the JSON request body for submitting a raw
// envelope to a topic.
type SubmitMessageRequest struct {
	Message         json.RawMessage `json:"message"`
	TransactionMemo string          `json:"transaction_memo,omitempty"`
}

// SubmitMessageResponse reports the ledger receipt of a submission.
type SubmitMessageResponse struct {
	TopicID        string `json:"topic_id"`
	SequenceNumber uint64 `json:"sequence_number"`
	TransactionID  string `json:"transaction_id"`
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	topicID := ledger.TopicID(r.PathValue("topicID"))

	var req SubmitMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	env, err := hcs.DecodeEnvelope(req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := s.hcs.SubmitMessage(r.Context(), topicID, env, req.TransactionMemo)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitMessageResponse{
		TopicID:        topicID.String(),
		SequenceNumber: receipt.SequenceNumber,
		TransactionID:  receipt.TransactionID,
	})
}

// InitializeAgentResponse reports the topics created for the agent.
type InitializeAgentResponse struct {
	InboundTopicID  string `json:"inbound_topic_id"`
	OutboundTopicID string `json:"outbound_topic_id"`
}

func (s *Server) handleInitializeAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.hcs.InitializeAgentTopics(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, InitializeAgentResponse{
		InboundTopicID:  agent.InboundTopicID.String(),
		OutboundTopicID: agent.OutboundTopicID.String(),
	})
}

func (s *Server) handleAgentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.hcs.Status())
}

// CreateConnectionRequest is the JSON request body for opening a
// connection with another agent.
type CreateConnectionRequest struct {
	ConnectedAccountID string `json:"connected_account_id"`
	ConnectionID       string `json:"connection_id"`
}

// CreateConnectionResponse reports the negotiated connection topic.
type CreateConnectionResponse struct {
	ConnectionTopicID  string `json:"connection_topic_id"`
	ConnectedAccountID string `json:"connected_account_id"`
	ConnectionID       string `json:"connection_id"`
	State              string `json:"state"`
}

func (s *Server) handleCreateConnection(w http.ResponseWriter, r *http.Request) {
	var req CreateConnectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ConnectedAccountID == "" || req.ConnectionID == "" {
		writeError(w, http.StatusBadRequest, "connected_account_id and connection_id are required")
		return
	}

	conn, err := s.hcs.CreateConnectionTopic(r.Context(), req.ConnectedAccountID, req.ConnectionID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateConnectionResponse{
		ConnectionTopicID:  conn.ConnectionTopicID.String(),
		ConnectedAccountID: conn.RemoteAccountID,
		ConnectionID:       conn.ConnectionID,
		State:              conn.State.String(),
	})
}

// SendMessageRequest is the JSON request body for messaging over a
// connection topic.
type SendMessageRequest struct {
	ConnectionTopicID  string `json:"connection_topic_id"`
	ConnectedAccountID string `json:"connected_account_id"`
	MessageContent     string `json:"message_content"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ConnectionTopicID == "" {
		writeError(w, http.StatusBadRequest, "connection_topic_id is required")
		return
	}

	receipt, err := s.hcs.SendMessage(r.Context(),
		ledger.TopicID(req.ConnectionTopicID), req.ConnectedAccountID, req.MessageContent)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitMessageResponse{
		TopicID:        req.ConnectionTopicID,
		SequenceNumber: receipt.SequenceNumber,
		TransactionID:  receipt.TransactionID,
	})
}

// TransactionApprovalRequest is the JSON request body for requesting
// approval of a scheduled transaction.
type TransactionApprovalRequest struct {
	ConnectionTopicID  string `json:"connection_topic_id"`
	ConnectedAccountID string `json:"connected_account_id"`
	ScheduleID         string `json:"schedule_id"`
	TransactionData    string `json:"transaction_data"`
}

func (s *Server) handleTransactionApproval(w http.ResponseWriter, r *http.Request) {
	var req TransactionApprovalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ConnectionTopicID == "" || req.ScheduleID == "" {
		writeError(w, http.StatusBadRequest, "connection_topic_id and schedule_id are required")
		return
	}

	receipt, err := s.hcs.RequestTransactionApproval(r.Context(),
		ledger.TopicID(req.ConnectionTopicID), req.ConnectedAccountID,
		req.ScheduleID, req.TransactionData)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitMessageResponse{
		TopicID:        req.ConnectionTopicID,
		SequenceNumber: receipt.SequenceNumber,
		TransactionID:  receipt.TransactionID,
	})
}

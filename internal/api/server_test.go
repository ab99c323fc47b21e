// ABOUTME: HTTP route tests covering the HCS and carbon credit surfaces
// ABOUTME: Runs against in-memory ledger, store, verifier, and token services

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraledger/terraledger/internal/credits"
	"github.com/terraledger/terraledger/internal/hcs"
	"github.com/terraledger/terraledger/internal/ledger"
	"github.com/terraledger/terraledger/internal/token"
	"github.com/terraledger/terraledger/internal/verifier"
)

type testEnv struct {
	server  *Server
	handler http.Handler
	ledger  *ledger.MemoryLedger
}

func newTestEnv(t *testing.T, jwtSecret string) *testEnv {
	t.Helper()

	led := ledger.NewMemoryLedger(100, nil)
	hcsSvc := hcs.NewService(led, hcs.Config{
		OperatorID:      "0.0.5005",
		Network:         "testnet",
		RegistryTopicID: "",
	}, nil)
	creditSvc := credits.NewService(
		credits.NewMemoryStore(),
		&verifier.Static{Coverage: 0.9},
		token.NewMemoryService(500, nil),
		nil,
	)

	srv := NewServer(hcsSvc, creditSvc, jwtSecret, nil)
	return &testEnv{server: srv, handler: srv.Handler(), ledger: led}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthAndRoot(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "online", body["status"])
}

func TestAgentStatus_BeforeInitialization(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/api/v1/hcs/agent/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[hcs.Status](t, rec)
	assert.Equal(t, "0.0.5005", status.OperatorID)
	assert.Equal(t, "testnet", status.Network)
	assert.True(t, status.ClientInitialized)
	assert.Empty(t, status.InboundTopicID)
}

func TestInitializeAgent_ThenStatus(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/hcs/agent/initialize", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	init := decode[InitializeAgentResponse](t, rec)
	assert.Equal(t, "0.0.100", init.InboundTopicID)
	assert.Equal(t, "0.0.101", init.OutboundTopicID)

	rec = env.do(t, http.MethodGet, "/api/v1/hcs/agent/status", nil)
	status := decode[hcs.Status](t, rec)
	assert.Equal(t, "0.0.100", status.InboundTopicID)
	assert.Equal(t, "0.0.101", status.OutboundTopicID)
}

func TestCreateTopic(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/hcs/topics", CreateTopicRequest{
		Memo: "hcs-10:0:60:1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[CreateTopicResponse](t, rec)
	assert.Equal(t, "0.0.100", resp.TopicID)

	memo, ok := env.ledger.TopicMemo(ledger.TopicID(resp.TopicID))
	require.True(t, ok)
	assert.Equal(t, "hcs-10:0:60:1", memo)
}

func TestCreateTopic_MissingMemo(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/hcs/topics", CreateTopicRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitMessage_ValidatesEnvelope(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/hcs/topics", CreateTopicRequest{Memo: "hcs-10:0:60:1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	topicID := decode[CreateTopicResponse](t, rec).TopicID

	rec = env.do(t, http.MethodPost, "/api/v1/hcs/topics/"+topicID+"/messages", SubmitMessageRequest{
		Message:         json.RawMessage(`{"p":"hcs-10","op":"message","data":"hi"}`),
		TransactionMemo: "hcs-10:op:6:3",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[SubmitMessageResponse](t, rec)
	assert.Equal(t, uint64(1), resp.SequenceNumber)

	// Payloads without the protocol marker are rejected before submission.
	rec = env.do(t, http.MethodPost, "/api/v1/hcs/topics/"+topicID+"/messages", SubmitMessageRequest{
		Message: json.RawMessage(`{"op":"message"}`),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, env.ledger.MessageCount(ledger.TopicID(topicID)))
}

func TestConnectionFlow(t *testing.T) {
	env := newTestEnv(t, "")

	// A connection before initialization is rejected.
	rec := env.do(t, http.MethodPost, "/api/v1/hcs/connections", CreateConnectionRequest{
		ConnectedAccountID: "0.0.2", ConnectionID: "42",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/hcs/agent/initialize", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/hcs/connections", CreateConnectionRequest{
		ConnectedAccountID: "0.0.2", ConnectionID: "42",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	conn := decode[CreateConnectionResponse](t, rec)
	assert.Equal(t, "0.0.102", conn.ConnectionTopicID)
	assert.Equal(t, "created", conn.State)

	memo, ok := env.ledger.TopicMemo(ledger.TopicID(conn.ConnectionTopicID))
	require.True(t, ok)
	assert.Equal(t, "hcs-10:1:60:2:0.0.100:42", memo)

	rec = env.do(t, http.MethodPost, "/api/v1/hcs/connections/messages", SendMessageRequest{
		ConnectionTopicID:  conn.ConnectionTopicID,
		ConnectedAccountID: "0.0.2",
		MessageContent:     "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/hcs/connections/transaction-approval", TransactionApprovalRequest{
		ConnectionTopicID:  conn.ConnectionTopicID,
		ConnectedAccountID: "0.0.2",
		ScheduleID:         "0.0.777",
		TransactionData:    "retire 5 credits",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[SubmitMessageResponse](t, rec)
	assert.Equal(t, uint64(2), resp.SequenceNumber)
}

func TestUnconfiguredLedgerClient_Returns400(t *testing.T) {
	hcsSvc := hcs.NewService(nil, hcs.Config{OperatorID: "0.0.5005", Network: "testnet"}, nil)
	creditSvc := credits.NewService(credits.NewMemoryStore(), &verifier.Static{Coverage: 0.9}, token.NewMemoryService(500, nil), nil)
	srv := NewServer(hcsSvc, creditSvc, "", nil)
	env := &testEnv{server: srv, handler: srv.Handler()}

	rec := env.do(t, http.MethodPost, "/api/v1/hcs/agent/initialize", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/hcs/agent/status", nil)
	status := decode[hcs.Status](t, rec)
	assert.False(t, status.ClientInitialized)
}

func TestCreditLifecycle(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/carbon-credits", CreateCreditRequest{
		ProjectName: "Amazon Reforestation",
		OwnerID:     "0.0.5005",
		Acres:       100,
		Location:    LocationBody{Latitude: -3.4653, Longitude: -62.2159},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	credit := decode[CreditResponse](t, rec)
	assert.Equal(t, "verified", credit.Status)
	assert.Equal(t, "0.0.500", credit.TokenID)
	require.NotNil(t, credit.SerialNumber)

	rec = env.do(t, http.MethodGet, "/api/v1/carbon-credits/"+credit.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/carbon-credits?status=verified", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]CreditResponse](t, rec)
	require.Len(t, list, 1)

	name := "Amazon Reforestation Phase II"
	rec = env.do(t, http.MethodPut, "/api/v1/carbon-credits/"+credit.ID, UpdateCreditRequest{
		ProjectName: &name,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, name, decode[CreditResponse](t, rec).ProjectName)

	rec = env.do(t, http.MethodPost, "/api/v1/carbon-credits/"+credit.ID+"/verify", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/carbon-credits/"+credit.ID+"/retire", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "retired", decode[CreditResponse](t, rec).Status)

	// Retiring twice fails.
	rec = env.do(t, http.MethodPost, "/api/v1/carbon-credits/"+credit.ID+"/retire", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCredit_NotFound(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/api/v1/carbon-credits/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCredit_Validation(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/carbon-credits", CreateCreditRequest{
		OwnerID: "0.0.5005",
		Acres:   100,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_GuardsAPIRoutes(t *testing.T) {
	env := newTestEnv(t, "test-secret")

	// Health stays open.
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// API routes require a token.
	rec = env.do(t, http.MethodGet, "/api/v1/hcs/agent/status", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := IssueToken([]byte("test-secret"), "cli", defaultTokenTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hcs/agent/status", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	recAuth := httptest.NewRecorder()
	env.handler.ServeHTTP(recAuth, req)
	assert.Equal(t, http.StatusOK, recAuth.Code)

	// A token signed with the wrong secret is rejected.
	bad, err := IssueToken([]byte("other-secret"), "cli", defaultTokenTTL)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/hcs/agent/status", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	recBad := httptest.NewRecorder()
	env.handler.ServeHTTP(recBad, req)
	assert.Equal(t, http.StatusUnauthorized, recBad.Code)
}

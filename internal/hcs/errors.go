// ABOUTME: Error taxonomy for the HCS-10 protocol layer
// ABOUTME: Sentinel errors distinguishing config, parse, and ledger failures

package hcs

import "errors"

var (
	// ErrClientNotInitialized indicates no ledger client is configured.
	// Operations fail with this before attempting any network I/O.
	ErrClientNotInitialized = errors.New("hcs: ledger client not initialized")

	// ErrAgentNotReady indicates the agent's inbound/outbound topics have
	// not been created yet, so connection and registry operations cannot
	// proceed.
	ErrAgentNotReady = errors.New("hcs: agent topics not initialized")

	// ErrMalformedMemo indicates a memo string violates the HCS-10
	// format. Decoding never silently defaults malformed input.
	ErrMalformedMemo = errors.New("hcs: malformed memo")

	// ErrTopicCreateFailed indicates the ledger rejected a topic
	// creation. The ledger's reason is wrapped inside. Not retried by
	// this layer.
	ErrTopicCreateFailed = errors.New("hcs: topic creation failed")

	// ErrSubmitFailed indicates the ledger rejected a message
	// submission. The ledger's status is wrapped inside. Not retried by
	// this layer.
	ErrSubmitFailed = errors.New("hcs: message submission failed")
)

// Package hcs implements the HCS-10 agent communication protocol layer.
//
// # Overview
//
// Agents discover each other and exchange messages exclusively through
// topics on an external consensus log (see the ledger package). This
// package owns everything above that boundary: the compact colon-delimited
// memo encoding fixed to each topic and submission, the operation-coded
// JSON envelope format, the four topic roles (registry, inbound, outbound,
// connection), and the connection handshake that turns two agents'
// inbound topics into a shared dual-control connection topic.
//
// # Service
//
// Service wraps a ledger.Client with the agent's identity configuration:
//
//	svc := hcs.NewService(client, hcs.Config{OperatorID: "0.0.5005"}, logger)
//	agent, err := svc.InitializeAgentTopics(ctx)
//
// Key operations:
//
//   - InitializeAgentTopics(ctx): create the inbound and outbound topics,
//     announce on the registry, return the immutable Agent identity
//   - CreateConnectionTopic(ctx, remote, connID): negotiate a dual-control
//     connection topic and record it on the agent's inbound topic
//   - SendMessage / RequestTransactionApproval: submit operation-coded
//     envelopes to a connection topic
//   - Register(ctx): best-effort announcement on the shared registry topic
//   - Status(): read-only snapshot for monitoring and the CLI
//
// # Wire formats
//
// Topic memo: hcs-10:<auth-flag>:<ttl>:<role>[:<ref>...]
// Transaction memo: hcs-10:op:<opcode>:<version>
// Envelope payload: JSON {"p":"hcs-10","op":<name>,...,"m":<note>}
//
// Both memo forms are bit-exact contracts shared with agents that never
// share process memory; see memo.go and envelope.go.
//
// # Ordering
//
// The ledger assigns a strictly increasing sequence number per topic.
// That number is the sole ordering key within a topic; envelopes on
// different topics have no cross-topic order. This layer adds no locking
// around submissions because it adds no ordering of its own.
package hcs

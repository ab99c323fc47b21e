// Package ledger defines the boundary to the external consensus log.
//
// # Overview
//
// Every topic and message in the HCS-10 protocol ultimately lands on an
// append-only, totally-ordered consensus log operated outside this process.
// This package models that collaborator as a small Client interface plus the
// opaque key handles its authorization model needs. Nothing here implements
// consensus: the contract is "create a named channel" and "append a payload,
// get back the per-topic sequence number the log assigned".
//
// # Client
//
// The Client interface has exactly two operations:
//
//   - CreateTopic(ctx, memo, adminKey, submitKey): create a channel, returns
//     its permanent TopicID
//   - SubmitMessage(ctx, topicID, payload, txMemo): append a payload, returns
//     a Receipt carrying the sequence number and transaction id
//
// Both are remote round trips that block until the log confirms finality, so
// both take a context and should be called off any latency-sensitive path.
//
// # Keys
//
// Keys are capability handles, not a cryptographic library commitment. A Key
// only needs to expose its public-key string; PrivateKey wraps ed25519 for
// generation and signing, and ThresholdKey expresses an m-of-n submission
// policy for dual-control topics.
//
// # MemoryLedger
//
// MemoryLedger is an in-process stand-in honoring the same contract: topic
// ids of the form 0.0.<n> and strictly increasing per-topic sequence numbers.
// It backs the demo binary and tests; it provides ordering, not consensus.
package ledger

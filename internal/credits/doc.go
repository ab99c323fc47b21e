// Package credits manages carbon credit records and their lifecycle.
//
// # Overview
//
// A carbon credit is created for a forested parcel, scored by the
// verification collaborator, and backed by a minted NFT serial once it
// verifies. Credits move from pending to verified or rejected and then
// to retired; only verified credits may be retired.
//
// # Store
//
// The Store interface persists credits; SQLiteStore is the production
// implementation (schema created on open, WAL mode) and MemoryStore is
// the in-memory fake used by tests.
//
// # Service
//
// Service orchestrates the lifecycle: it runs verification, computes the
// carbon sequestration estimate, mints the NFT for verified credits, and
// persists the result. Minting is best-effort: a credit that verified
// but failed to mint is still recorded, without token information.
package credits

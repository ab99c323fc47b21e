// Package api exposes the HTTP surface of terraledger.
//
// # Routes
//
// HCS-10 agent communication:
//
//	POST /api/v1/hcs/topics                           create a raw topic
//	POST /api/v1/hcs/topics/{topicID}/messages        submit an envelope
//	POST /api/v1/hcs/agent/initialize                 create inbound/outbound topics
//	GET  /api/v1/hcs/agent/status                     read-only agent snapshot
//	POST /api/v1/hcs/connections                      negotiate a connection topic
//	POST /api/v1/hcs/connections/messages             send a message
//	POST /api/v1/hcs/connections/transaction-approval request approval
//
// Carbon credits:
//
//	POST /api/v1/carbon-credits                 create (verifies and mints)
//	GET  /api/v1/carbon-credits                 list, ?owner_id= & ?status=
//	GET  /api/v1/carbon-credits/{creditID}      fetch one
//	PUT  /api/v1/carbon-credits/{creditID}      update fields
//	POST /api/v1/carbon-credits/{creditID}/verify  re-run verification
//	POST /api/v1/carbon-credits/{creditID}/retire  retire a verified credit
//
// Plus GET / and GET /health, which are always unauthenticated.
//
// # Authentication
//
// When a JWT secret is configured, every /api/v1 route requires a
// Bearer token signed with HS256 carrying a "sub" claim. Without a
// secret the API is open, matching a development deployment.
package api

// Package config loads and validates the terraledger configuration.
//
// Configuration is a YAML file with ${VAR} environment expansion, so
// operator credentials can stay out of the file itself:
//
//	hedera:
//	  network: testnet
//	  operator_id: ${HEDERA_OPERATOR_ID}
//	  operator_key: ${HEDERA_OPERATOR_KEY}
//	  topic_ttl_seconds: 60
//	registry:
//	  topic_id: ${HCS_REGISTRY_TOPIC_ID}
//	server:
//	  http_addr: ":8000"
//	database:
//	  path: ~/.local/share/terraledger/terraledger.db
//	auth:
//	  jwt_secret: ${TERRALEDGER_JWT_SECRET}
//	logging:
//	  level: info
//	  format: text
//
// Load applies defaults, expands environment variables, and validates
// required fields before returning.
package config

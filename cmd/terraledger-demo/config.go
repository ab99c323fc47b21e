// ABOUTME: Scenario profile loading for the terraledger demo
// ABOUTME: Loads TOML profiles with environment variable expansion

package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

type Profile struct {
	Agent    AgentProfile    `toml:"agent"`
	Registry RegistryProfile `toml:"registry"`
	Peer     PeerProfile     `toml:"peer"`
	Scenario ScenarioProfile `toml:"scenario"`
}

type AgentProfile struct {
	OperatorID      string `toml:"operator_id"`
	Network         string `toml:"network"`
	TopicTTLSeconds int    `toml:"topic_ttl_seconds"`
}

type RegistryProfile struct {
	TopicID string `toml:"topic_id"`
}

type PeerProfile struct {
	AccountID string `toml:"account_id"`
}

type ScenarioProfile struct {
	ConnectionID string   `toml:"connection_id"`
	Messages     []string `toml:"messages"`
	ScheduleID   string   `toml:"schedule_id"`
}

// LoadProfile reads a scenario profile, expanding ${VAR} references from
// the environment.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var p Profile
	if _, err := toml.Decode(expanded, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating profile: %w", err)
	}

	return &p, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// Validate checks that required profile fields are present.
func (p *Profile) Validate() error {
	if p.Agent.OperatorID == "" {
		return fmt.Errorf("agent.operator_id is required")
	}
	if p.Agent.Network == "" {
		p.Agent.Network = "testnet"
	}
	if p.Peer.AccountID == "" {
		return fmt.Errorf("peer.account_id is required")
	}
	if p.Scenario.ConnectionID == "" {
		return fmt.Errorf("scenario.connection_id is required")
	}
	return nil
}

// DefaultProfile is the scenario used when no profile file is given.
func DefaultProfile() *Profile {
	return &Profile{
		Agent: AgentProfile{
			OperatorID:      "0.0.5005",
			Network:         "testnet",
			TopicTTLSeconds: 60,
		},
		Registry: RegistryProfile{TopicID: "0.0.9999"},
		Peer:     PeerProfile{AccountID: "0.0.7007"},
		Scenario: ScenarioProfile{
			ConnectionID: "1",
			Messages:     []string{"Hello from TerraLedger.", "Offering 12 verified credits."},
			ScheduleID:   "0.0.8123",
		},
	}
}

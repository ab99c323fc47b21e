// ABOUTME: End-to-end demo of the agent handshake against the in-process ledger
// ABOUTME: Drives topic setup, registration, connection, and messaging from a profile

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/terraledger/terraledger/internal/hcs"
	"github.com/terraledger/terraledger/internal/ledger"
)

const registryTopicNum = 9999

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var profile *Profile
	if len(os.Args) > 1 {
		p, err := LoadProfile(os.Args[1])
		if err != nil {
			return err
		}
		profile = p
	} else {
		profile = DefaultProfile()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)

	cyan.Println("terraledger demo")
	cyan.Println("================")
	fmt.Println()

	led := ledger.NewMemoryLedger(registryTopicNum, logger)

	// The shared registry topic has to exist before anyone announces on
	// it. Numbering starts at the registry so the profile can name it.
	registryID, err := led.CreateTopic(ctx, "terraledger agent registry", nil, nil)
	if err != nil {
		return fmt.Errorf("creating registry topic: %w", err)
	}
	if profile.Registry.TopicID != "" && profile.Registry.TopicID != registryID.String() {
		return fmt.Errorf("profile registry.topic_id %q does not match simulated registry %s", profile.Registry.TopicID, registryID)
	}

	svc := hcs.NewService(led, hcs.Config{
		OperatorID:      profile.Agent.OperatorID,
		Network:         profile.Agent.Network,
		RegistryTopicID: registryID,
		TopicTTL:        profile.Agent.TopicTTLSeconds,
	}, logger)

	green.Print("▶ ")
	fmt.Printf("Initializing agent %s on %s\n", profile.Agent.OperatorID, profile.Agent.Network)

	agent, err := svc.InitializeAgentTopics(ctx)
	if err != nil {
		return fmt.Errorf("initializing agent topics: %w", err)
	}
	gray.Printf("  inbound  %s\n", agent.InboundTopicID)
	gray.Printf("  outbound %s\n", agent.OutboundTopicID)
	gray.Printf("  registry %s (%d announcement)\n", registryID, led.MessageCount(registryID))

	green.Print("▶ ")
	fmt.Printf("Opening connection %s with %s\n", profile.Scenario.ConnectionID, profile.Peer.AccountID)

	conn, err := svc.CreateConnectionTopic(ctx, profile.Peer.AccountID, profile.Scenario.ConnectionID)
	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	gray.Printf("  topic %s state %s\n", conn.ConnectionTopicID, conn.State)
	if memo, ok := led.TopicMemo(conn.ConnectionTopicID); ok {
		gray.Printf("  memo  %s\n", memo)
	}

	for _, msg := range profile.Scenario.Messages {
		receipt, err := svc.SendMessage(ctx, conn.ConnectionTopicID, profile.Peer.AccountID, msg)
		if err != nil {
			return fmt.Errorf("sending message: %w", err)
		}
		green.Print("▶ ")
		fmt.Printf("Sent #%d: %s\n", receipt.SequenceNumber, msg)
	}

	if profile.Scenario.ScheduleID != "" {
		receipt, err := svc.RequestTransactionApproval(ctx, conn.ConnectionTopicID,
			profile.Peer.AccountID, profile.Scenario.ScheduleID, "Credit transfer pending signature")
		if err != nil {
			return fmt.Errorf("requesting approval: %w", err)
		}
		green.Print("▶ ")
		fmt.Printf("Requested approval of %s (#%d)\n", profile.Scenario.ScheduleID, receipt.SequenceNumber)
	}

	fmt.Println()
	cyan.Println("Ledger summary")
	for _, topicID := range []ledger.TopicID{agent.InboundTopicID, agent.OutboundTopicID, conn.ConnectionTopicID, registryID} {
		memo, _ := led.TopicMemo(topicID)
		fmt.Printf("  %-10s %2d msgs  %s\n", topicID, led.MessageCount(topicID), memo)
	}

	return nil
}

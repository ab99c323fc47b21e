// ABOUTME: In-process ledger implementation with per-topic sequence numbers
// ABOUTME: Backs the demo binary and tests; ordering without consensus

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// topicRecord holds everything the in-memory ledger remembers about a topic.
type topicRecord struct {
	memo      string
	adminKey  Key
	submitKey Key
	sequence  uint64
	messages  []storedMessage
}

type storedMessage struct {
	payload        []byte
	txMemo         string
	sequenceNumber uint64
}

// MemoryLedger is an in-process Client. Topic ids are assigned as 0.0.<n>
// from a monotonically increasing counter, and each topic carries its own
// strictly increasing sequence counter, matching the contract of the real
// consensus service.
type MemoryLedger struct {
	mu        sync.Mutex
	nextTopic uint64
	topics    map[TopicID]*topicRecord
	logger    *slog.Logger
}

// NewMemoryLedger creates an empty in-memory ledger. Topic numbering starts
// at firstTopicNum, so a ledger seeded with 100 hands out 0.0.100, 0.0.101...
func NewMemoryLedger(firstTopicNum uint64, logger *slog.Logger) *MemoryLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryLedger{
		nextTopic: firstTopicNum,
		topics:    make(map[TopicID]*topicRecord),
		logger:    logger.With("component", "memledger"),
	}
}

// CreateTopic assigns the next topic id and stores the memo verbatim.
func (l *MemoryLedger) CreateTopic(ctx context.Context, memo string, adminKey, submitKey Key) (TopicID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := TopicID(fmt.Sprintf("0.0.%d", l.nextTopic))
	l.nextTopic++
	l.topics[id] = &topicRecord{
		memo:      memo,
		adminKey:  adminKey,
		submitKey: submitKey,
	}

	l.logger.Debug("topic created", "topic_id", id, "memo", memo)
	return id, nil
}

// SubmitMessage appends the payload to the topic and returns the next
// per-topic sequence number.
func (l *MemoryLedger) SubmitMessage(ctx context.Context, topicID TopicID, payload []byte, txMemo string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.topics[topicID]
	if !ok {
		return nil, fmt.Errorf("submitting to %s: %w", topicID, ErrTopicNotFound)
	}

	rec.sequence++
	rec.messages = append(rec.messages, storedMessage{
		payload:        payload,
		txMemo:         txMemo,
		sequenceNumber: rec.sequence,
	})

	l.logger.Debug("message submitted",
		"topic_id", topicID,
		"sequence_number", rec.sequence,
		"tx_memo", txMemo,
	)

	return &Receipt{
		SequenceNumber: rec.sequence,
		TransactionID:  uuid.New().String(),
	}, nil
}

// TopicMemo returns the memo a topic was created with, for inspection by
// the demo binary and tests.
func (l *MemoryLedger) TopicMemo(topicID TopicID) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.topics[topicID]
	if !ok {
		return "", false
	}
	return rec.memo, true
}

// MessageCount returns how many messages a topic holds.
func (l *MemoryLedger) MessageCount(topicID TopicID) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.topics[topicID]
	if !ok {
		return 0
	}
	return len(rec.messages)
}

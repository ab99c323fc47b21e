// ABOUTME: Client interface and receipt types for the external consensus log
// ABOUTME: Defines the two-operation boundary contract used by the HCS layer

package ledger

import (
	"context"
	"errors"
)

// ErrNotInitialized indicates the ledger client has no credentials or
// connection configured. Callers must not attempt network I/O after
// seeing this error.
var ErrNotInitialized = errors.New("ledger client not initialized")

// ErrTopicNotFound indicates a submission targeted a topic the ledger
// does not know about.
var ErrTopicNotFound = errors.New("topic not found")

// TopicID is the ledger-assigned identifier of a topic. Opaque to this
// layer; immutable once assigned.
type TopicID string

// String returns the identifier in its canonical form.
func (t TopicID) String() string { return string(t) }

// Receipt is the ledger's acknowledgement of an accepted submission.
type Receipt struct {
	// SequenceNumber is the strictly increasing per-topic ordinal the
	// ledger assigned to this message. It is the sole ordering key
	// within a topic.
	SequenceNumber uint64

	// TransactionID identifies the submission transaction on the ledger.
	TransactionID string
}

// Client is the consensus-log collaborator. Implementations must block
// until the ledger confirms the operation (or the context is cancelled)
// and must surface ledger rejections as errors rather than partial
// results.
type Client interface {
	// CreateTopic creates a new topic with the given memo fixed at
	// creation time. adminKey and submitKey may be nil; a nil submitKey
	// means anyone may submit to the topic.
	CreateTopic(ctx context.Context, memo string, adminKey, submitKey Key) (TopicID, error)

	// SubmitMessage appends payload to the topic, attaching txMemo as
	// the transaction memo.
	SubmitMessage(ctx context.Context, topicID TopicID, payload []byte, txMemo string) (*Receipt, error)
}

// ABOUTME: Tests for the in-memory ledger implementation
// ABOUTME: Covers topic id assignment and per-topic sequence number ordering

package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_CreateTopic_AssignsSequentialIDs(t *testing.T) {
	l := NewMemoryLedger(100, nil)
	ctx := context.Background()

	first, err := l.CreateTopic(ctx, "hcs-10:0:60:0:0.0.5005", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, TopicID("0.0.100"), first)

	second, err := l.CreateTopic(ctx, "hcs-10:0:60:1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, TopicID("0.0.101"), second)
}

func TestMemoryLedger_CreateTopic_StoresMemoVerbatim(t *testing.T) {
	l := NewMemoryLedger(1, nil)

	id, err := l.CreateTopic(context.Background(), "hcs-10:1:60:2:0.0.100:12345", nil, nil)
	require.NoError(t, err)

	memo, ok := l.TopicMemo(id)
	require.True(t, ok)
	assert.Equal(t, "hcs-10:1:60:2:0.0.100:12345", memo)
}

func TestMemoryLedger_SubmitMessage_UnknownTopic(t *testing.T) {
	l := NewMemoryLedger(1, nil)

	_, err := l.SubmitMessage(context.Background(), "0.0.999", []byte("{}"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestMemoryLedger_SequenceNumbers_StrictlyIncreasingPerTopic(t *testing.T) {
	l := NewMemoryLedger(10, nil)
	ctx := context.Background()

	topicA, err := l.CreateTopic(ctx, "hcs-10:0:60:0:0.0.1", nil, nil)
	require.NoError(t, err)
	topicB, err := l.CreateTopic(ctx, "hcs-10:0:60:1", nil, nil)
	require.NoError(t, err)

	// Interleave submissions across the two topics. Each topic must see
	// its own 1, 2, 3... regardless of the interleaving.
	var seqA, seqB []uint64
	for i := 0; i < 5; i++ {
		ra, err := l.SubmitMessage(ctx, topicA, []byte("a"), "hcs-10:op:6:3")
		require.NoError(t, err)
		seqA = append(seqA, ra.SequenceNumber)

		rb, err := l.SubmitMessage(ctx, topicB, []byte("b"), "hcs-10:op:6:3")
		require.NoError(t, err)
		seqB = append(seqB, rb.SequenceNumber)
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, uint64(i+1), seqA[i])
		assert.Equal(t, uint64(i+1), seqB[i])
	}

	assert.Equal(t, 5, l.MessageCount(topicA))
	assert.Equal(t, 5, l.MessageCount(topicB))
}

func TestMemoryLedger_SubmitMessage_AssignsTransactionID(t *testing.T) {
	l := NewMemoryLedger(1, nil)
	ctx := context.Background()

	id, err := l.CreateTopic(ctx, "hcs-10:0:60:1", nil, nil)
	require.NoError(t, err)

	receipt, err := l.SubmitMessage(ctx, id, []byte("{}"), "hcs-10:op:0:0")
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.TransactionID)
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	pub := key.PublicKeyString()
	assert.Len(t, pub, 64) // 32-byte ed25519 public key, hex encoded

	sig := key.Sign([]byte("payload"))
	assert.Len(t, sig, 64)
}

func TestThresholdKey_PublicKeyString(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)

	tk := NewThresholdKey(2, a, b)
	s := tk.PublicKeyString()
	assert.Contains(t, s, "threshold/2")
	assert.Contains(t, s, a.PublicKeyString())
	assert.Contains(t, s, b.PublicKeyString())
}

// ABOUTME: Opaque key handles for topic authorization on the consensus log
// ABOUTME: Wraps ed25519 keypairs and m-of-n threshold submission policies

package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Key is an authorization capability attached to a topic. The ledger only
// ever sees the public material; this layer never inspects it beyond the
// string form.
type Key interface {
	PublicKeyString() string
}

// PublicKey is a key handle known only by its public string, as supplied
// by an external caller. It cannot sign; it only names a capability.
type PublicKey string

// PublicKeyString returns the key string as given.
func (k PublicKey) PublicKeyString() string { return string(k) }

// PrivateKey is a generated ed25519 keypair usable as a topic admin or
// submit key.
type PrivateKey struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// GenerateKey creates a fresh ed25519 keypair.
func GenerateKey() (*PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return &PrivateKey{pub: pub, priv: priv}, nil
}

// PublicKeyString returns the hex encoding of the public key.
func (k *PrivateKey) PublicKeyString() string {
	return hex.EncodeToString(k.pub)
}

// Sign signs message with the private half of the keypair.
func (k *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// ThresholdKey is an m-of-n submission policy: the ledger accepts a
// submission only when at least Threshold of the listed keys have signed.
// Keys may be empty while the counterparty's public key is still unknown;
// the policy is then a placeholder the ledger enforces by key count alone.
type ThresholdKey struct {
	Threshold int
	Keys      []Key
}

// NewThresholdKey builds a threshold policy over the given keys.
func NewThresholdKey(threshold int, keys ...Key) *ThresholdKey {
	return &ThresholdKey{Threshold: threshold, Keys: keys}
}

// PublicKeyString renders the policy as threshold/<m>:<key>,... for memo
// and logging purposes.
func (k *ThresholdKey) PublicKeyString() string {
	s := fmt.Sprintf("threshold/%d", k.Threshold)
	for _, key := range k.Keys {
		s += ":" + key.PublicKeyString()
	}
	return s
}

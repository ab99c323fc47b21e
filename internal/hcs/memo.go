// ABOUTME: Codec for HCS-10 colon-delimited topic and transaction memos
// ABOUTME: Deterministic encode/decode with strict rejection of malformed input

package hcs

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolMarker tags every memo and envelope as HCS-10 family.
const ProtocolMarker = "hcs-10"

// TopicRole identifies what a topic is for. The numeric values are the
// role codes on the wire.
type TopicRole int

const (
	RoleInbound    TopicRole = 0 // public channel where counterparties write requests
	RoleOutbound   TopicRole = 1 // the agent's own activity log, submit-restricted
	RoleConnection TopicRole = 2 // negotiated dual-control channel between two agents
)

// String returns the role name for logging.
func (r TopicRole) String() string {
	switch r {
	case RoleInbound:
		return "inbound"
	case RoleOutbound:
		return "outbound"
	case RoleConnection:
		return "connection"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// requiredRefs is how many trailing refs each role carries in its memo:
// inbound carries the owning agent's operator id, connection carries the
// initiator's inbound topic id plus the connection id, outbound none.
func (r TopicRole) requiredRefs() int {
	switch r {
	case RoleInbound:
		return 1
	case RoleConnection:
		return 2
	default:
		return 0
	}
}

// TopicMemo is the decoded form of the metadata string fixed to a topic
// at creation: hcs-10:<auth-flag>:<ttl>:<role>[:<ref>...].
type TopicMemo struct {
	// Dual is the auth flag: false = single-key/public-submit topic,
	// true = dual-control topic (connection topics only).
	Dual bool

	// TTL is the advertised time-to-live in seconds.
	TTL int

	Role TopicRole
	Refs []string
}

// Encode renders the memo in its canonical wire form.
func (m TopicMemo) Encode() string {
	authFlag := "0"
	if m.Dual {
		authFlag = "1"
	}
	parts := []string{ProtocolMarker, authFlag, strconv.Itoa(m.TTL), strconv.Itoa(int(m.Role))}
	parts = append(parts, m.Refs...)
	return strings.Join(parts, ":")
}

// ParseTopicMemo decodes a topic memo string. Malformed input (wrong
// marker, non-numeric fields, out-of-range codes, missing required refs)
// fails with ErrMalformedMemo.
func ParseTopicMemo(s string) (*TopicMemo, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: want at least 4 fields, got %d", ErrMalformedMemo, len(parts))
	}
	if parts[0] != ProtocolMarker {
		return nil, fmt.Errorf("%w: marker %q", ErrMalformedMemo, parts[0])
	}

	var dual bool
	switch parts[1] {
	case "0":
		dual = false
	case "1":
		dual = true
	default:
		return nil, fmt.Errorf("%w: auth flag %q", ErrMalformedMemo, parts[1])
	}

	ttl, err := strconv.Atoi(parts[2])
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("%w: ttl %q", ErrMalformedMemo, parts[2])
	}

	roleCode, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: role %q", ErrMalformedMemo, parts[3])
	}
	role := TopicRole(roleCode)
	if role != RoleInbound && role != RoleOutbound && role != RoleConnection {
		return nil, fmt.Errorf("%w: role code %d", ErrMalformedMemo, roleCode)
	}

	refs := parts[4:]
	if len(refs) < role.requiredRefs() {
		return nil, fmt.Errorf("%w: %s memo needs %d refs, got %d",
			ErrMalformedMemo, role, role.requiredRefs(), len(refs))
	}
	for _, ref := range refs {
		if ref == "" {
			return nil, fmt.Errorf("%w: empty ref", ErrMalformedMemo)
		}
	}
	if len(refs) == 0 {
		refs = nil
	}

	return &TopicMemo{Dual: dual, TTL: ttl, Role: role, Refs: refs}, nil
}

// TransactionMemo renders the memo attached to a submitted message:
// hcs-10:op:<opcode>:<version>. The version is fixed per operation and
// distinguishes payload shape revisions.
func TransactionMemo(op Operation) string {
	return fmt.Sprintf("%s:op:%d:%d", ProtocolMarker, int(op), op.Version())
}

// ParseTransactionMemo decodes a transaction memo, returning the
// operation it announces. The version field must match the operation's
// fixed payload revision.
func ParseTransactionMemo(s string) (Operation, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedMemo, len(parts))
	}
	if parts[0] != ProtocolMarker || parts[1] != "op" {
		return 0, fmt.Errorf("%w: prefix %q:%q", ErrMalformedMemo, parts[0], parts[1])
	}

	code, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%w: opcode %q", ErrMalformedMemo, parts[2])
	}
	op := Operation(code)
	if !op.valid() {
		return 0, fmt.Errorf("%w: unknown opcode %d", ErrMalformedMemo, code)
	}

	version, err := strconv.Atoi(parts[3])
	if err != nil {
		return 0, fmt.Errorf("%w: version %q", ErrMalformedMemo, parts[3])
	}
	if version != op.Version() {
		return 0, fmt.Errorf("%w: version %d for op %s, want %d",
			ErrMalformedMemo, version, op, op.Version())
	}

	return op, nil
}

package tx

import "time"

// Type classifies a transaction.
type Type uint8

const (
	TypeDeposit Type = iota
	TypeTransfer
	TypeWithdrawal
)

// Status is the settlement state of a transaction.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusPending
)

// Transaction is the logical record shared by every on-wire encoding.
// It carries no behavior and is never mutated after construction: a
// Transaction is either produced by a successful decode or built by the
// caller for encoding.
type Transaction struct {
	TxID        uint64    // Opaque identifier; uniqueness is not checked
	Type        Type      // Deposit, Transfer or Withdrawal
	FromUserID  uint64    // Source account
	ToUserID    uint64    // Destination account
	Amount      int64     // Sign meaning is caller-defined
	Timestamp   time.Time // UTC instant, millisecond precision on the wire
	Status      Status    // Success, Failure or Pending
	Description string    // Arbitrary UTF-8 text, stored without quotes
}

// Equal reports whether two transactions are logically identical.
// Timestamps are compared at millisecond precision, matching what every
// encoding is able to carry.
func (t *Transaction) Equal(o *Transaction) bool {
	return t.TxID == o.TxID &&
		t.Type == o.Type &&
		t.FromUserID == o.FromUserID &&
		t.ToUserID == o.ToUserID &&
		t.Amount == o.Amount &&
		t.Timestamp.UnixMilli() == o.Timestamp.UnixMilli() &&
		t.Status == o.Status &&
		t.Description == o.Description
}

// String tokens used by the CSV and text encodings.
const (
	tokenDeposit    = "DEPOSIT"
	tokenTransfer   = "TRANSFER"
	tokenWithdrawal = "WITHDRAWAL"

	tokenSuccess = "SUCCESS"
	tokenFailure = "FAILURE"
	tokenPending = "PENDING"
)

// String returns the wire token for the transaction type.
func (t Type) String() string {
	switch t {
	case TypeDeposit:
		return tokenDeposit
	case TypeTransfer:
		return tokenTransfer
	case TypeWithdrawal:
		return tokenWithdrawal
	}
	return "UNKNOWN"
}

// ParseType maps a wire token to a Type. The second return value is false
// for unrecognized tokens.
func ParseType(s string) (Type, bool) {
	switch s {
	case tokenDeposit:
		return TypeDeposit, true
	case tokenTransfer:
		return TypeTransfer, true
	case tokenWithdrawal:
		return TypeWithdrawal, true
	}
	return 0, false
}

// TypeFromWire maps a binary discriminant to a Type.
func TypeFromWire(b byte) (Type, bool) {
	if b > uint8(TypeWithdrawal) {
		return 0, false
	}
	return Type(b), true
}

// String returns the wire token for the transaction status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return tokenSuccess
	case StatusFailure:
		return tokenFailure
	case StatusPending:
		return tokenPending
	}
	return "UNKNOWN"
}

// ParseStatus maps a wire token to a Status. The second return value is
// false for unrecognized tokens.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case tokenSuccess:
		return StatusSuccess, true
	case tokenFailure:
		return StatusFailure, true
	case tokenPending:
		return StatusPending, true
	}
	return 0, false
}

// StatusFromWire maps a binary discriminant to a Status.
func StatusFromWire(b byte) (Status, bool) {
	if b > uint8(StatusPending) {
		return 0, false
	}
	return Status(b), true
}

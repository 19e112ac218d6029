package tx

import (
	"testing"
	"time"
)

func TestTypeTokens(t *testing.T) {
	testCases := []struct {
		token string
		want  Type
	}{
		{"DEPOSIT", TypeDeposit},
		{"TRANSFER", TypeTransfer},
		{"WITHDRAWAL", TypeWithdrawal},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := ParseType(tc.token)
			if !ok {
				t.Fatalf("ParseType(%q) not recognized", tc.token)
			}
			if got != tc.want {
				t.Errorf("ParseType(%q) = %v, want %v", tc.token, got, tc.want)
			}
			if got.String() != tc.token {
				t.Errorf("String() = %q, want %q", got.String(), tc.token)
			}
		})
	}

	if _, ok := ParseType("deposit"); ok {
		t.Error("ParseType should be case-sensitive")
	}
	if _, ok := ParseType("REFUND"); ok {
		t.Error("ParseType accepted an unknown token")
	}
}

func TestStatusTokens(t *testing.T) {
	testCases := []struct {
		token string
		want  Status
	}{
		{"SUCCESS", StatusSuccess},
		{"FAILURE", StatusFailure},
		{"PENDING", StatusPending},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := ParseStatus(tc.token)
			if !ok {
				t.Fatalf("ParseStatus(%q) not recognized", tc.token)
			}
			if got != tc.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tc.token, got, tc.want)
			}
			if got.String() != tc.token {
				t.Errorf("String() = %q, want %q", got.String(), tc.token)
			}
		})
	}

	if _, ok := ParseStatus("OK"); ok {
		t.Error("ParseStatus accepted an unknown token")
	}
}

func TestWireDiscriminants(t *testing.T) {
	for b := byte(0); b < 3; b++ {
		if _, ok := TypeFromWire(b); !ok {
			t.Errorf("TypeFromWire(%d) rejected a valid discriminant", b)
		}
		if _, ok := StatusFromWire(b); !ok {
			t.Errorf("StatusFromWire(%d) rejected a valid discriminant", b)
		}
	}
	if _, ok := TypeFromWire(3); ok {
		t.Error("TypeFromWire(3) accepted an invalid discriminant")
	}
	if _, ok := StatusFromWire(255); ok {
		t.Error("StatusFromWire(255) accepted an invalid discriminant")
	}
}

func TestTransactionEqual(t *testing.T) {
	base := Transaction{
		TxID:        42,
		Type:        TypeTransfer,
		FromUserID:  1,
		ToUserID:    2,
		Amount:      -500,
		Timestamp:   time.UnixMilli(1633036860000).UTC(),
		Status:      StatusPending,
		Description: "rent",
	}

	same := base
	// Sub-millisecond precision is not representable on the wire and must
	// not affect logical equality.
	same.Timestamp = base.Timestamp.Add(500 * time.Microsecond)
	if !base.Equal(&same) {
		t.Error("transactions differing below millisecond precision should be equal")
	}

	diff := base
	diff.Timestamp = base.Timestamp.Add(time.Millisecond)
	if base.Equal(&diff) {
		t.Error("transactions differing by a millisecond should not be equal")
	}

	diff = base
	diff.Description = "RENT"
	if base.Equal(&diff) {
		t.Error("transactions with different descriptions should not be equal")
	}
}

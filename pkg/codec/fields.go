package codec

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field names shared by the CSV header and the text block keys.
const (
	fieldTxID        = "TX_ID"
	fieldTxType      = "TX_TYPE"
	fieldFromUserID  = "FROM_USER_ID"
	fieldToUserID    = "TO_USER_ID"
	fieldAmount      = "AMOUNT"
	fieldTimestamp   = "TIMESTAMP"
	fieldStatus      = "STATUS"
	fieldDescription = "DESCRIPTION"
)

// fieldNames lists the 8 logical fields in canonical header order.
var fieldNames = [...]string{
	fieldTxID,
	fieldTxType,
	fieldFromUserID,
	fieldToUserID,
	fieldAmount,
	fieldTimestamp,
	fieldStatus,
	fieldDescription,
}

func parseUint(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, formatErrorf("field %s is not an unsigned integer: %q", name, s)
	}
	return v, nil
}

func parseInt(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, formatErrorf("field %s is not an integer: %q", name, s)
	}
	return v, nil
}

// timeFromMillis maps a wire timestamp to a UTC instant. Values above
// math.MaxInt64 cannot represent an instant and are rejected.
func timeFromMillis(ms uint64) (time.Time, error) {
	if ms > math.MaxInt64 {
		return time.Time{}, formatErrorf("invalid timestamp: %d", ms)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// quoteWrap surrounds a description with one pair of quotes, escaping
// backslashes and interior quotes so tokenized encodings round-trip exactly.
func quoteWrap(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// unquote strips exactly one leading and one trailing quote. Escapes have
// already been resolved by the lexer, so no further rewriting happens here.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

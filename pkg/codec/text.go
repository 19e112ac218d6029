package codec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ypbank/finparser/pkg/tx"
)

// TextReader decodes transactions from a "key: value" block stream. Blocks
// are separated by blank lines, keys may appear in any order, and every
// block is self-describing: no header negotiation happens.
type TextReader struct {
	lex *textLexer
}

// NewTextReader creates a reader over the given stream.
func NewTextReader(r io.Reader) *TextReader {
	return &TextReader{lex: newTextLexer(r)}
}

// Read decodes the next block. It returns ErrEndOfData when the stream is
// exhausted with no pairs pending; a final block without a terminating
// blank line is accepted.
func (tr *TextReader) Read() (*tx.Transaction, error) {
	fields := make(map[string]string)
loop:
	for {
		token, err := tr.lex.Next()
		if err != nil {
			return nil, err
		}
		switch token.kind {
		case textKV:
			fields[token.key] = token.value
		case textRecordEnd:
			break loop
		case textEOF:
			if token.pending {
				fields[token.key] = token.value
			}
			break loop
		}
	}

	if len(fields) == 0 {
		return nil, ErrEndOfData
	}
	return decodeTextFields(fields)
}

func decodeTextFields(fields map[string]string) (*tx.Transaction, error) {
	// A completed block carries exactly the 8 required keys: the error
	// names the first offending key it finds.
	required := make(map[string]bool, len(fieldNames))
	for _, name := range fieldNames {
		required[name] = true
	}
	for key := range fields {
		if !required[key] {
			return nil, formatErrorf("unexpected key: %s", key)
		}
	}
	for _, name := range fieldNames {
		if _, ok := fields[name]; !ok {
			return nil, formatErrorf("missing key: %s", name)
		}
	}

	txID, err := parseUint(fieldTxID, fields[fieldTxID])
	if err != nil {
		return nil, err
	}
	txType, ok := tx.ParseType(fields[fieldTxType])
	if !ok {
		return nil, formatErrorf("wrong %s token: %q", fieldTxType, fields[fieldTxType])
	}
	fromUserID, err := parseUint(fieldFromUserID, fields[fieldFromUserID])
	if err != nil {
		return nil, err
	}
	toUserID, err := parseUint(fieldToUserID, fields[fieldToUserID])
	if err != nil {
		return nil, err
	}
	amount, err := parseInt(fieldAmount, fields[fieldAmount])
	if err != nil {
		return nil, err
	}
	millis, err := parseUint(fieldTimestamp, fields[fieldTimestamp])
	if err != nil {
		return nil, err
	}
	when, err := timeFromMillis(millis)
	if err != nil {
		return nil, err
	}
	status, ok := tx.ParseStatus(fields[fieldStatus])
	if !ok {
		return nil, formatErrorf("wrong %s token: %q", fieldStatus, fields[fieldStatus])
	}
	desc, ok := unquote(fields[fieldDescription])
	if !ok {
		return nil, formatErrorf("%s is not quote-wrapped: %q", fieldDescription, fields[fieldDescription])
	}

	return &tx.Transaction{
		TxID:        txID,
		Type:        txType,
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Amount:      amount,
		Timestamp:   when,
		Status:      status,
		Description: desc,
	}, nil
}

// TextWriter encodes transactions onto a "key: value" block stream.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a writer over the given stream.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Write emits one "key: value" line per field, in canonical field order,
// followed by a blank terminator line. The description is quote-wrapped,
// with backslashes and interior quotes escaped.
func (tw *TextWriter) Write(t *tx.Transaction) error {
	values := map[string]string{
		fieldTxID:        strconv.FormatUint(t.TxID, 10),
		fieldTxType:      t.Type.String(),
		fieldFromUserID:  strconv.FormatUint(t.FromUserID, 10),
		fieldToUserID:    strconv.FormatUint(t.ToUserID, 10),
		fieldAmount:      strconv.FormatInt(t.Amount, 10),
		fieldTimestamp:   strconv.FormatUint(uint64(t.Timestamp.UnixMilli()), 10),
		fieldStatus:      t.Status.String(),
		fieldDescription: quoteWrap(t.Description),
	}
	for _, name := range fieldNames {
		if _, err := fmt.Fprintf(tw.w, "%s: %s\n", name, values[name]); err != nil {
			return ioError(err)
		}
	}
	if _, err := io.WriteString(tw.w, "\n"); err != nil {
		return ioError(err)
	}
	return nil
}

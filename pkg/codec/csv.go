package codec

import (
	"io"
	"strconv"
	"strings"

	"github.com/ypbank/finparser/pkg/tx"
)

// CSVReader decodes transactions from a CSV stream. The header line is read
// and checked once, on the first Read, and establishes the column-name to
// index map used for every following row.
type CSVReader struct {
	lex     *csvLexer
	columns map[string]int // nil until the header has been negotiated
}

// NewCSVReader creates a reader over the given stream.
func NewCSVReader(r io.Reader) *CSVReader {
	return &CSVReader{lex: newCSVLexer(r)}
}

func (cr *CSVReader) readHeader() error {
	header, err := cr.lex.NextRow()
	if err != nil {
		return err
	}
	if len(header) != len(fieldNames) {
		return formatErrorf("wrong header: expected %d columns, got %d", len(fieldNames), len(header))
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		if name != fieldNames[idx] {
			return formatErrorf("wrong header: column %d is %q, expected %q", idx, name, fieldNames[idx])
		}
		columns[name] = idx
	}
	cr.columns = columns
	return nil
}

// Read decodes the next row. It returns ErrEndOfData when the stream is
// exhausted at a row boundary.
func (cr *CSVReader) Read() (*tx.Transaction, error) {
	if cr.columns == nil {
		if err := cr.readHeader(); err != nil {
			return nil, err
		}
	}
	row, err := cr.lex.NextRow()
	if err != nil {
		return nil, err
	}
	return cr.decodeRow(row)
}

func (cr *CSVReader) decodeRow(row []string) (*tx.Transaction, error) {
	if len(row) != len(cr.columns) {
		return nil, formatErrorf("row has %d fields, header has %d", len(row), len(cr.columns))
	}
	field := func(name string) string { return row[cr.columns[name]] }

	txID, err := parseUint(fieldTxID, field(fieldTxID))
	if err != nil {
		return nil, err
	}
	txType, ok := tx.ParseType(field(fieldTxType))
	if !ok {
		return nil, formatErrorf("wrong %s token: %q", fieldTxType, field(fieldTxType))
	}
	fromUserID, err := parseUint(fieldFromUserID, field(fieldFromUserID))
	if err != nil {
		return nil, err
	}
	toUserID, err := parseUint(fieldToUserID, field(fieldToUserID))
	if err != nil {
		return nil, err
	}
	amount, err := parseInt(fieldAmount, field(fieldAmount))
	if err != nil {
		return nil, err
	}
	millis, err := parseUint(fieldTimestamp, field(fieldTimestamp))
	if err != nil {
		return nil, err
	}
	when, err := timeFromMillis(millis)
	if err != nil {
		return nil, err
	}
	status, ok := tx.ParseStatus(field(fieldStatus))
	if !ok {
		return nil, formatErrorf("wrong %s token: %q", fieldStatus, field(fieldStatus))
	}
	desc, ok := unquote(field(fieldDescription))
	if !ok {
		return nil, formatErrorf("%s is not quote-wrapped: %q", fieldDescription, field(fieldDescription))
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

// CSVWriter encodes transactions onto a CSV stream. The fixed header is
// written exactly once, before the first row, and the writer builds its own
// column map from it.
type CSVWriter struct {
	w       io.Writer
	columns map[string]int
}

// NewCSVWriter creates a writer over the given stream.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

func (cw *CSVWriter) writeHeader() error {
	columns := make(map[string]int, len(fieldNames))
	for idx, name := range fieldNames {
		columns[name] = idx
	}
	if _, err := io.WriteString(cw.w, strings.Join(fieldNames[:], ",")+"\n"); err != nil {
		return ioError(err)
	}
	cw.columns = columns
	return nil
}

// Write encodes one record as a newline-terminated row. The description is
// quote-wrapped, with backslashes and interior quotes escaped.
func (cw *CSVWriter) Write(t *tx.Transaction) error {
	if cw.columns == nil {
		if err := cw.writeHeader(); err != nil {
			return err
		}
	}

	row := make([]string, len(cw.columns))
	row[cw.columns[fieldTxID]] = strconv.FormatUint(t.TxID, 10)
	row[cw.columns[fieldTxType]] = t.Type.String()
	row[cw.columns[fieldFromUserID]] = strconv.FormatUint(t.FromUserID, 10)
	row[cw.columns[fieldToUserID]] = strconv.FormatUint(t.ToUserID, 10)
	row[cw.columns[fieldAmount]] = strconv.FormatInt(t.Amount, 10)
	row[cw.columns[fieldTimestamp]] = strconv.FormatUint(uint64(t.Timestamp.UnixMilli()), 10)
	row[cw.columns[fieldStatus]] = t.Status.String()
	row[cw.columns[fieldDescription]] = quoteWrap(t.Description)

	if _, err := io.WriteString(cw.w, strings.Join(row, ",")+"\n"); err != nil {
		return ioError(err)
	}
	return nil
}

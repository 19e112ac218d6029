package codec

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// csvLexState enumerates the row tokenizer states.
type csvLexState int

const (
	csvRecordStart csvLexState = iota // before the first byte of a row
	csvValueStart                     // before the first byte of a field
	csvUnquoted                       // inside an unquoted field, or after a closing quote
	csvQuoted                         // inside a quoted field
	csvEscape                         // byte after a backslash, taken literally
)

// csvLexer is a byte-level finite-state machine that splits a stream into
// rows of fields. Quotes are kept in the field text and stripped later at
// field interpretation; backslash escapes are resolved here.
type csvLexer struct {
	r     *bufio.Reader
	state csvLexState
	field bytes.Buffer
	row   []string
}

func newCSVLexer(r io.Reader) *csvLexer {
	return &csvLexer{r: bufio.NewReader(r), state: csvRecordStart}
}

// step feeds one byte to the state machine and reports whether a complete
// row has been emitted into l.row.
func (l *csvLexer) step(b byte) bool {
	switch l.state {
	case csvRecordStart:
		switch b {
		case ' ', '\t', '\r', '\n':
			// Blank and whitespace-only lines between rows are skipped.
			return false
		}
		l.state = csvValueStart
		return l.step(b)

	case csvValueStart:
		switch b {
		case ' ':
			return false
		case ',':
			l.endField()
			return false
		case '\n':
			l.endField()
			return l.endRow()
		case '"':
			l.field.WriteByte(b)
			l.state = csvQuoted
			return false
		}
		l.field.WriteByte(b)
		l.state = csvUnquoted
		return false

	case csvUnquoted:
		switch b {
		case ',':
			l.endField()
			l.state = csvValueStart
			return false
		case '\n':
			l.endField()
			return l.endRow()
		}
		l.field.WriteByte(b)
		return false

	case csvQuoted:
		if b == '\\' {
			l.state = csvEscape
			return false
		}
		l.field.WriteByte(b)
		if b == '"' {
			// Closing quote: scan for the field terminator as unquoted.
			l.state = csvUnquoted
		}
		return false

	case csvEscape:
		// The escaped byte loses any delimiter or quote meaning.
		l.field.WriteByte(b)
		l.state = csvQuoted
		return false
	}
	return false
}

func (l *csvLexer) endField() {
	l.row = append(l.row, strings.TrimRight(l.field.String(), " \t\r"))
	l.field.Reset()
}

func (l *csvLexer) endRow() bool {
	l.state = csvRecordStart
	return true
}

// NextRow returns the fields of the next non-empty row. At end of stream it
// returns ErrEndOfData when no partial row is pending; a non-empty partial
// row without a terminating newline is flushed as a final row.
func (l *csvLexer) NextRow() ([]string, error) {
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				return nil, ioError(err)
			}
			if l.state == csvRecordStart && len(l.row) == 0 {
				return nil, ErrEndOfData
			}
			l.endField()
			row := l.row
			l.row = nil
			l.state = csvRecordStart
			return row, nil
		}
		if l.step(b) {
			row := l.row
			l.row = nil
			return row, nil
		}
	}
}

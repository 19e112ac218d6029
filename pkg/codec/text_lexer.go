package codec

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// textLexState enumerates the block tokenizer states.
type textLexState int

const (
	textRecordStart textLexState = iota // before the first key of a record
	textKeyStart                        // before the first byte of a key
	textInKey                           // inside a key, up to the ':'
	textValueStart                      // before the first byte of a value
	textUnquoted                        // inside an unquoted value, or after a closing quote
	textQuoted                          // inside a quoted value
	textEscape                          // byte after a backslash, taken literally
	textComment                         // inside a '#' comment, runs to end of line
)

// textTokenKind discriminates the tokens the lexer emits.
type textTokenKind int

const (
	textKV        textTokenKind = iota // one "key: value" pair
	textRecordEnd                      // blank line between records
	textEOF                            // stream exhausted; may carry a pending pair
)

type textToken struct {
	kind       textTokenKind
	key, value string
	pending    bool // for textEOF: a final unterminated pair is attached
}

// textLexer is a byte-level finite-state machine that splits a stream of
// "key: value" blocks into tokens. '#' comments run to end of line and the
// state active before the comment resumes afterwards. Quotes are kept in
// the value text; backslash escapes are resolved here.
type textLexer struct {
	r       *bufio.Reader
	state   textLexState
	resume  textLexState // state to restore when a comment ends
	key     bytes.Buffer
	value   bytes.Buffer
	emitted textToken
}

func newTextLexer(r io.Reader) *textLexer {
	return &textLexer{r: bufio.NewReader(r), state: textRecordStart}
}

// step feeds one byte to the state machine and reports whether a token has
// been emitted into l.emitted.
func (l *textLexer) step(b byte) bool {
	switch l.state {
	case textRecordStart:
		switch b {
		case ' ', '\t', '\r', '\n':
			return false
		case '#':
			l.resume = textRecordStart
			l.state = textComment
			return false
		}
		l.key.WriteByte(b)
		l.state = textInKey
		return false

	case textKeyStart:
		switch b {
		case ' ', '\t', '\r':
			return false
		case '#':
			l.resume = textKeyStart
			l.state = textComment
			return false
		case '\n':
			// Empty line with no pairs pending on it: record boundary.
			l.state = textRecordStart
			l.emitted = textToken{kind: textRecordEnd}
			return true
		}
		l.key.WriteByte(b)
		l.state = textInKey
		return false

	case textInKey:
		if b == ':' {
			l.state = textValueStart
			return false
		}
		l.key.WriteByte(b)
		return false

	case textValueStart:
		switch b {
		case ' ':
			return false
		case '\n':
			return l.emitKV()
		case '"':
			l.value.WriteByte(b)
			l.state = textQuoted
			return false
		}
		l.value.WriteByte(b)
		l.state = textUnquoted
		return false

	case textUnquoted:
		if b == '\n' {
			return l.emitKV()
		}
		l.value.WriteByte(b)
		return false

	case textQuoted:
		if b == '\\' {
			l.state = textEscape
			return false
		}
		l.value.WriteByte(b)
		if b == '"' {
			l.state = textUnquoted
		}
		return false

	case textEscape:
		// The escaped byte loses any quote, colon or hash meaning.
		l.value.WriteByte(b)
		l.state = textQuoted
		return false

	case textComment:
		if b == '\n' {
			l.state = l.resume
		}
		return false
	}
	return false
}

func (l *textLexer) emitKV() bool {
	l.emitted = textToken{
		kind:  textKV,
		key:   strings.TrimSpace(l.key.String()),
		value: strings.TrimSpace(l.value.String()),
	}
	l.key.Reset()
	l.value.Reset()
	l.state = textKeyStart
	return true
}

// Next returns the next token. At end of stream a non-empty partial pair is
// attached to the textEOF token rather than rejected.
func (l *textLexer) Next() (textToken, error) {
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				return textToken{}, ioError(err)
			}
			key := strings.TrimSpace(l.key.String())
			value := strings.TrimSpace(l.value.String())
			l.key.Reset()
			l.value.Reset()
			l.state = textRecordStart
			if key != "" || value != "" {
				return textToken{kind: textEOF, key: key, value: value, pending: true}, nil
			}
			return textToken{kind: textEOF}, nil
		}
		if l.step(b) {
			return l.emitted, nil
		}
	}
}

package codec

import (
	"io"

	"github.com/ypbank/finparser/pkg/tx"
)

// Format selection tokens. The set of formats is fixed by design; anything
// else constructs an unrecognized reader/writer whose every call fails.
const (
	FormatBin  = "bin"
	FormatCSV  = "csv"
	FormatText = "text"
)

type recordReader interface {
	Read() (*tx.Transaction, error)
}

type recordWriter interface {
	Write(t *tx.Transaction) error
}

// Reader is the single seam exposed to external collaborators: a closed
// union over the three concrete codecs, selected once at construction by a
// case-sensitive format name.
type Reader struct {
	format string
	impl   recordReader // nil for unrecognized formats
}

// NewReader constructs a record reader for the named format over the given
// stream. An unrecognized name still constructs; every subsequent Read on
// it fails with a format error carrying the original name.
func NewReader(r io.Reader, format string) *Reader {
	reader := &Reader{format: format}
	switch format {
	case FormatBin:
		reader.impl = NewBinaryReader(r)
	case FormatCSV:
		reader.impl = NewCSVReader(r)
	case FormatText:
		reader.impl = NewTextReader(r)
	}
	return reader
}

// Format returns the format name the reader was constructed with.
func (r *Reader) Format() string {
	return r.format
}

// Read decodes the next record, returning ErrEndOfData on clean exhaustion.
func (r *Reader) Read() (*tx.Transaction, error) {
	if r.impl == nil {
		return nil, formatErrorf("unsupported format: %q", r.format)
	}
	return r.impl.Read()
}

// Writer is the writing half of the dispatcher seam.
type Writer struct {
	format string
	impl   recordWriter
}

// NewWriter constructs a record writer for the named format over the given
// stream. An unrecognized name still constructs; every subsequent Write on
// it fails with a format error carrying the original name.
func NewWriter(w io.Writer, format string) *Writer {
	writer := &Writer{format: format}
	switch format {
	case FormatBin:
		writer.impl = NewBinaryWriter(w)
	case FormatCSV:
		writer.impl = NewCSVWriter(w)
	case FormatText:
		writer.impl = NewTextWriter(w)
	}
	return writer
}

// Format returns the format name the writer was constructed with.
func (w *Writer) Format() string {
	return w.format
}

// Write encodes one record.
func (w *Writer) Write(t *tx.Transaction) error {
	if w.impl == nil {
		return formatErrorf("unsupported format: %q", w.format)
	}
	return w.impl.Write(t)
}

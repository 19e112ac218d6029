package codec

import (
	"bufio"
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/ypbank/finparser/pkg/tx"
)

// Magic is the 4-byte sentinel at the start of every binary record.
const Magic uint32 = 0x5950424E

// Fixed-width portion of the record body: tx_id(8) + tx_type(1) + from(8) +
// to(8) + amount(8) + timestamp(8) + status(1) + desc_len(4). The magic and
// record_size prefix are not part of the body.
const binFixedBodySize = 46

// binRecord mirrors the on-wire layout, all integers big-endian:
//
//	magic:u32 | record_size:u32 | tx_id:u64 | tx_type:u8 | from_user_id:u64 |
//	to_user_id:u64 | amount:i64 | timestamp:u64(ms) | status:u8 |
//	desc_len:u32 | description:desc_len bytes
//
// The description bytes on the wire carry exactly one pair of surrounding
// quotes. record_size is written as an informational body length and is not
// used to bound reads: fields are read positionally.
type binRecord struct {
	TxID        uint64
	TxType      uint8
	FromUserID  uint64
	ToUserID    uint64
	Amount      int64
	Timestamp   uint64
	Status      uint8
	Description []byte
}

func (r *binRecord) encode() []byte {
	buf := make([]byte, 8+binFixedBodySize+len(r.Description))
	binary.BigEndian.PutUint32(buf[0:4], Magic)
	binary.BigEndian.PutUint32(buf[4:8], uint32(binFixedBodySize+len(r.Description)))
	binary.BigEndian.PutUint64(buf[8:16], r.TxID)
	buf[16] = r.TxType
	binary.BigEndian.PutUint64(buf[17:25], r.FromUserID)
	binary.BigEndian.PutUint64(buf[25:33], r.ToUserID)
	binary.BigEndian.PutUint64(buf[33:41], uint64(r.Amount))
	binary.BigEndian.PutUint64(buf[41:49], r.Timestamp)
	buf[49] = r.Status
	binary.BigEndian.PutUint32(buf[50:54], uint32(len(r.Description)))
	copy(buf[54:], r.Description)
	return buf
}

func (r *binRecord) toTransaction() (*tx.Transaction, error) {
	txType, ok := tx.TypeFromWire(r.TxType)
	if !ok {
		return nil, formatErrorf("wrong tx_type discriminant: %d", r.TxType)
	}
	status, ok := tx.StatusFromWire(r.Status)
	if !ok {
		return nil, formatErrorf("wrong status discriminant: %d", r.Status)
	}
	when, err := timeFromMillis(r.Timestamp)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(r.Description) {
		return nil, formatErrorf("description is not valid UTF-8")
	}
	desc, ok := unquote(string(r.Description))
	if !ok {
		return nil, formatErrorf("description is not quote-wrapped: %q", r.Description)
	}
	return &tx.Transaction{
		TxID:        r.TxID,
		Type:        txType,
		FromUserID:  r.FromUserID,
		ToUserID:    r.ToUserID,
		Amount:      r.Amount,
		Timestamp:   when,
		Status:      status,
		Description: desc,
	}, nil
}

// BinaryReader decodes fixed-layout binary records from a byte stream.
type BinaryReader struct {
	r *bufio.Reader
}

// NewBinaryReader creates a reader over the given stream. The reader takes
// exclusive ownership of the stream for the duration of its use.
func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{r: bufio.NewReader(r)}
}

// Read decodes the next record. It returns ErrEndOfData when the stream
// ends before any byte of the next record's magic; EOF anywhere inside a
// record is an IOError, distinct from clean end-of-data.
func (br *BinaryReader) Read() (*tx.Transaction, error) {
	var head [8]byte
	if _, err := io.ReadFull(br.r, head[:4]); err != nil {
		if err == io.EOF {
			return nil, ErrEndOfData
		}
		return nil, ioError(err)
	}
	if magic := binary.BigEndian.Uint32(head[:4]); magic != Magic {
		return nil, formatErrorf("wrong magic: %#x", magic)
	}

	// record_size is informational; the fields below are read by fixed
	// width plus desc_len.
	if _, err := io.ReadFull(br.r, head[4:8]); err != nil {
		return nil, ioError(err)
	}

	body := make([]byte, binFixedBodySize)
	if _, err := io.ReadFull(br.r, body); err != nil {
		return nil, ioError(err)
	}

	rec := &binRecord{
		TxID:       binary.BigEndian.Uint64(body[0:8]),
		TxType:     body[8],
		FromUserID: binary.BigEndian.Uint64(body[9:17]),
		ToUserID:   binary.BigEndian.Uint64(body[17:25]),
		Amount:     int64(binary.BigEndian.Uint64(body[25:33])),
		Timestamp:  binary.BigEndian.Uint64(body[33:41]),
		Status:     body[41],
	}

	descLen := binary.BigEndian.Uint32(body[42:46])
	rec.Description = make([]byte, descLen)
	if _, err := io.ReadFull(br.r, rec.Description); err != nil {
		return nil, ioError(err)
	}

	return rec.toTransaction()
}

// BinaryWriter encodes fixed-layout binary records onto a byte stream.
type BinaryWriter struct {
	w io.Writer
}

// NewBinaryWriter creates a writer over the given stream.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{w: w}
}

// Write encodes one record. The description is re-wrapped in quotes and
// desc_len/record_size are recomputed from the actual field widths. Unlike
// the tokenized encodings the binary description is length-prefixed, so its
// bytes between the quotes are carried verbatim with no escaping.
func (bw *BinaryWriter) Write(t *tx.Transaction) error {
	rec := &binRecord{
		TxID:        t.TxID,
		TxType:      uint8(t.Type),
		FromUserID:  t.FromUserID,
		ToUserID:    t.ToUserID,
		Amount:      t.Amount,
		Timestamp:   uint64(t.Timestamp.UnixMilli()),
		Status:      uint8(t.Status),
		Description: []byte(`"` + t.Description + `"`),
	}
	if _, err := bw.w.Write(rec.encode()); err != nil {
		return ioError(err)
	}
	return nil
}

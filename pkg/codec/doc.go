// Package codec converts financial transaction records between three
// on-disk encodings through one shared in-memory model (pkg/tx):
//
//   - "bin": a fixed-layout big-endian binary format, one magic-prefixed
//     record after another.
//   - "csv": a quoted/escaped CSV format with a mandatory header line that
//     establishes column order.
//   - "text": a comment-tolerant "key: value" block format, blocks
//     separated by blank lines.
//
// # Binary Record Format
//
// All integers big-endian:
//
//	magic:u32 | record_size:u32 | tx_id:u64 | tx_type:u8 | from_user_id:u64 |
//	to_user_id:u64 | amount:i64 | timestamp:u64(ms) | status:u8 |
//	desc_len:u32 | description:desc_len bytes
//
// The magic constant is 0x5950424E. The description bytes are UTF-8 and
// carry exactly one pair of surrounding quotes; decode strips them.
// record_size is the body length (46 + desc_len) and is informational:
// fields are read positionally by fixed width plus desc_len.
//
// # Tokenizers
//
// The CSV and text decoders are byte-at-a-time finite-state machines. Both
// resolve backslash escapes inside quoted values, so delimiters, quotes,
// colons and hashes survive a round-trip. The text tokenizer additionally
// discards '#' comments, resuming whatever state was active before the
// comment started.
//
// # Errors
//
// Every decode failure is one of three kinds: a *FormatError (the bytes do
// not satisfy the wire format), an *IOError (the backing stream failed,
// including truncation inside a record), or ErrEndOfData (clean exhaustion
// at a record boundary). There is no skip-and-continue mode: one bad record
// aborts the remainder of the stream for that codec instance.
//
// # Usage
//
// Readers and writers are constructed through the format dispatcher:
//
//	r := codec.NewReader(src, codec.FormatBin)
//	w := codec.NewWriter(dst, codec.FormatCSV)
//	for {
//		t, err := r.Read()
//		if errors.Is(err, codec.ErrEndOfData) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		if err := w.Write(t); err != nil {
//			return err
//		}
//	}
//
// Each reader/writer exclusively owns its backing stream. All calls are
// synchronous and blocking; cancellation and retries are the caller's
// policy.
package codec

// Package convert implements the stream-level contracts built on the codec
// dispatcher: whole-stream format conversion and lockstep record comparison.
package convert

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ypbank/finparser/pkg/codec"
	"github.com/ypbank/finparser/pkg/tx"
)

// Convert reads records from src in srcFormat and writes them to dst in
// dstFormat until the source is cleanly exhausted. It returns the number of
// records converted. The first error aborts the whole operation; nothing
// already written is rolled back.
func Convert(dst io.Writer, dstFormat string, src io.Reader, srcFormat string) (int, error) {
	reader := codec.NewReader(src, srcFormat)
	writer := codec.NewWriter(dst, dstFormat)

	count := 0
	for {
		record, err := reader.Read()
		if err == codec.ErrEndOfData {
			return count, nil
		}
		if err != nil {
			return count, errors.Wrapf(err, "reading record %d", count)
		}
		if err := writer.Write(record); err != nil {
			return count, errors.Wrapf(err, "writing record %d", count)
		}
		count++
	}
}

// Mismatch identifies one record position where the two streams differ.
type Mismatch struct {
	Index int
	Left  *tx.Transaction
	Right *tx.Transaction
}

// CompareResult is the outcome of comparing two record streams.
type CompareResult struct {
	Records        int        // records compared pairwise
	Mismatches     []Mismatch // positions with unequal logical records
	LengthMismatch bool       // the streams held unequal record counts
}

// Identical reports whether the two streams held the same records in the
// same order.
func (r *CompareResult) Identical() bool {
	return !r.LengthMismatch && len(r.Mismatches) == 0
}

func (r *CompareResult) String() string {
	switch {
	case r.LengthMismatch:
		return fmt.Sprintf("streams differ in record count after %d records", r.Records)
	case len(r.Mismatches) > 0:
		return fmt.Sprintf("%d of %d records differ", len(r.Mismatches), r.Records)
	default:
		return fmt.Sprintf("streams are identical (%d records)", r.Records)
	}
}

// Compare pulls one record from each stream in lockstep and compares them
// logically. Unequal records are collected per position; unequal record
// counts stop the comparison and are reported as their own condition.
func Compare(lhs io.Reader, lhsFormat string, rhs io.Reader, rhsFormat string) (*CompareResult, error) {
	lhsReader := codec.NewReader(lhs, lhsFormat)
	rhsReader := codec.NewReader(rhs, rhsFormat)

	result := &CompareResult{}
	for {
		left, lhsErr := lhsReader.Read()
		if lhsErr != nil && lhsErr != codec.ErrEndOfData {
			return nil, errors.Wrapf(lhsErr, "reading left record %d", result.Records)
		}
		right, rhsErr := rhsReader.Read()
		if rhsErr != nil && rhsErr != codec.ErrEndOfData {
			return nil, errors.Wrapf(rhsErr, "reading right record %d", result.Records)
		}

		lhsDone := lhsErr == codec.ErrEndOfData
		rhsDone := rhsErr == codec.ErrEndOfData
		if lhsDone && rhsDone {
			return result, nil
		}
		if lhsDone != rhsDone {
			result.LengthMismatch = true
			return result, nil
		}

		if !left.Equal(right) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Index: result.Records,
				Left:  left,
				Right: right,
			})
		}
		result.Records++
	}
}

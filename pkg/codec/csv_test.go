package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ypbank/finparser/pkg/tx"
)

const csvHeaderLine = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"

const csvRow1 = `1000000000000000,DEPOSIT,0,9223372036854775807,100,1633036860000,FAILURE,"Record number 1"`

func TestCSVLexer_Rows(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "simple row",
			input: "a,b,c\n",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "leading spaces skipped",
			input: "  a,  b,c\n",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "blank lines between rows skipped",
			input: "a,b\n\n   \n\nc,d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "quoted comma stays in field",
			input: "\"a,b\",c\n",
			want:  [][]string{{`"a,b"`, "c"}},
		},
		{
			name:  "quoted newline stays in field",
			input: "\"a\nb\",c\n",
			want:  [][]string{{"\"a\nb\"", "c"}},
		},
		{
			name:  "escaped quote inside quoted value",
			input: `"a\"b",c` + "\n",
			want:  [][]string{{`"a"b"`, "c"}},
		},
		{
			name:  "escaped backslash",
			input: `"a\\b",c` + "\n",
			want:  [][]string{{`"a\b"`, "c"}},
		},
		{
			name:  "partial final row flushed at EOF",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "empty fields",
			input: "a,,c\n",
			want:  [][]string{{"a", "", "c"}},
		},
		{
			name:  "carriage returns trimmed",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lex := newCSVLexer(strings.NewReader(tc.input))
			var got [][]string
			for {
				row, err := lex.NextRow()
				if err == ErrEndOfData {
					break
				}
				require.NoError(t, err)
				got = append(got, row)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCSVLexer_CleanEndOfData(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n \n"} {
		lex := newCSVLexer(strings.NewReader(input))
		_, err := lex.NextRow()
		assert.Equal(t, ErrEndOfData, err, "input %q", input)
	}
}

func TestCSVReader_GoldenRow(t *testing.T) {
	input := csvHeaderLine + "\n" + csvRow1 + "\n"
	reader := NewCSVReader(strings.NewReader(input))

	got, err := reader.Read()
	require.NoError(t, err)
	assert.True(t, got.Equal(record1()), "decoded %+v", got)

	_, err = reader.Read()
	assert.Equal(t, ErrEndOfData, err)
}

func TestCSVWriter_GoldenRow(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)
	require.NoError(t, writer.Write(record1()))

	assert.Equal(t, csvHeaderLine+"\n"+csvRow1+"\n", buf.String())
}

func TestCSVWriter_HeaderWrittenOnce(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)
	require.NoError(t, writer.Write(record1()))
	require.NoError(t, writer.Write(record2()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, csvHeaderLine, lines[0])
}

func TestCSVReader_HeaderValidation(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{"columns out of order", "TX_TYPE,TX_ID,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"},
		{"misspelled column", "TX_ID,TX_KIND,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"},
		{"missing column", "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS"},
		{"extra column", csvHeaderLine + ",EXTRA"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// The bad header is rejected before any row is read, even
			// though a perfectly valid row follows.
			input := tc.header + "\n" + csvRow1 + "\n"
			_, err := NewCSVReader(strings.NewReader(input)).Read()
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestCSVReader_FieldErrors(t *testing.T) {
	row := func(fields ...string) string {
		return csvHeaderLine + "\n" + strings.Join(fields, ",") + "\n"
	}

	testCases := []struct {
		name  string
		input string
	}{
		{"short row", row("1", "DEPOSIT", "0")},
		{"unknown tx type", row("1", "LOAN", "0", "2", "100", "1633036860000", "SUCCESS", `"x"`)},
		{"unknown status", row("1", "DEPOSIT", "0", "2", "100", "1633036860000", "MAYBE", `"x"`)},
		{"non-numeric tx id", row("one", "DEPOSIT", "0", "2", "100", "1633036860000", "SUCCESS", `"x"`)},
		{"negative from user id", row("1", "DEPOSIT", "-4", "2", "100", "1633036860000", "SUCCESS", `"x"`)},
		{"timestamp out of range", row("1", "DEPOSIT", "0", "2", "100", "99999999999999999999", "SUCCESS", `"x"`)},
		{"description not quoted", row("1", "DEPOSIT", "0", "2", "100", "1633036860000", "SUCCESS", "x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCSVReader(strings.NewReader(tc.input)).Read()
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	records := []*tx.Transaction{record1(), record2()}
	records[1].Description = `comma, "quote" and \backslash\ survive`

	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)
	for _, record := range records {
		require.NoError(t, writer.Write(record))
	}

	reader := NewCSVReader(&buf)
	for i, want := range records {
		got, err := reader.Read()
		require.NoError(t, err, "record %d", i)
		assert.True(t, got.Equal(want), "record %d: got %+v", i, got)
	}
	_, err := reader.Read()
	assert.Equal(t, ErrEndOfData, err)
}

func TestCSVReader_TrailingPartialRow(t *testing.T) {
	// A final row without a terminating newline is flushed as a record.
	input := csvHeaderLine + "\n" + csvRow1
	reader := NewCSVReader(strings.NewReader(input))

	got, err := reader.Read()
	require.NoError(t, err)
	assert.True(t, got.Equal(record1()))

	_, err = reader.Read()
	assert.Equal(t, ErrEndOfData, err)
}

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

type failingReader struct{ data string }

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, errors.New("tty gone")
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestAskLine(t *testing.T) {
	var out bytes.Buffer
	got, err := askLine(rdr("  alice \n"), "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username\n> ", out.String())

	got, err = askLine(rdr("lastline"), "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = askLine(rdr(""), "Username", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestAskPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := askPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = askPassword(&out)
	assert.Error(t, err)
}

func TestAskAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stops at blank line", "shipped the release\nslept well\n\nignored\n", "shipped the release\nslept well"},
		{"whitespace-only line ends input", "one\n   \ntwo\n", "one"},
		{"CRLF", "a\r\nb\r\n\r\n", "a\nb"},
		{"EOF without blank line", "only line", "only line"},
		{"immediate blank keeps nothing", "\n", ""},
		{"inner indentation kept", "list:\n  - item\n\n", "list:\n  - item"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := askAnswer(rdr(tc.input), "What went well?", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "blank line to finish")
		})
	}
}

func TestAskAnswer_ReadError(t *testing.T) {
	var out bytes.Buffer
	_, err := askAnswer(bufio.NewReader(&failingReader{data: "partial"}), "Answer", &out)
	assert.EqualError(t, err, "tty gone")
}

func TestAskKeys(t *testing.T) {
	var out bytes.Buffer
	got, err := askKeys(rdr(" nextStep \ncustomField_0\r\n\n"), "Field keys in display order", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"nextStep", "customField_0"}, got)
	assert.Contains(t, out.String(), "Field keys in display order")

	got, err = askKeys(rdr("\n"), "Field keys", &out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

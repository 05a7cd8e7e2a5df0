package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		input  string
		size   int
		output string
		err    error
	}){
		{"carriage_return", "ab\rcd", 10, "ab\n", nil},
		{"newline", "ab\ncd", 10, "ab\n", nil},
		{"limit", "abcdef", 4, "abcd", nil},
		{"exact", "abc\r", 4, "abc\n", nil},
		{"eof", "ab", 10, "ab", io.EOF},
		{"empty", "", 0, "", nil},
	}

	for _, entry := range table {
		tty := NewStream(strings.NewReader(entry.input))
		buf := make([]byte, entry.size)
		n, err := Read(tty, Stdin, buf)
		assert.Equal(entry.err, err, entry.name)
		assert.Equal(entry.output, string(buf[:n]), entry.name)
	}
}

func TestReadContinues(t *testing.T) {
	assert := assert.New(t)

	tty := NewStream(strings.NewReader("ab\rcd"))
	buf := make([]byte, 10)

	n, err := Read(tty, Stdin, buf)
	assert.NoError(err)
	assert.Equal(3, n)
	assert.Equal("ab\n", string(buf[:n]))

	n, err = Read(tty, Stdin, buf)
	assert.ErrorIs(err, io.EOF)
	assert.Equal("cd", string(buf[:n]))
}

func TestReadNotSupported(t *testing.T) {
	assert := assert.New(t)

	tty := NewStream(strings.NewReader("ab"))
	buf := make([]byte, 10)

	for _, fd := range []int{Stdout, Stderr, 7, -1} {
		n, err := Read(tty, fd, buf)
		assert.ErrorIs(err, ErrNotSupported)
		assert.Equal(0, n)
	}

	// Nothing was consumed.
	n, err := Read(tty, Stdin, buf)
	assert.ErrorIs(err, io.EOF)
	assert.Equal("ab", string(buf[:n]))
}

func TestReader(t *testing.T) {
	assert := assert.New(t)

	rd := NewReader(NewStream(bytes.NewBufferString("one\rtwo\r")))

	data, err := io.ReadAll(rd)
	assert.NoError(err)
	assert.Equal("one\ntwo\n", string(data))
}

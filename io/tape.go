package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// TAPE_ASCII_LIMIT is the first output value not printed as a character.
	TAPE_ASCII_LIMIT = 128
)

// Tape is an interactive ASCII console device. Each input value is one
// character. Characters are taken from Script first; once the script is
// used up, a full line is read from Reader whenever the buffer runs dry.
// Output values are written to Writer as characters, or as a decimal line
// when outside the ASCII range.
type Tape struct {
	Reader io.Reader // Interactive input.
	Writer io.Writer // Console output.
	Script string    // Characters to supply before reading from Reader.
	Echo   bool      // If set, script characters are echoed to Writer.

	reader  *bufio.Reader
	buffer  []byte
	script  bool
	started bool
}

var _ Device = (*Tape)(nil)

// Rewind discards any buffered input, and restarts the script.
func (tc *Tape) Rewind() {
	tc.buffer = []byte(tc.Script)
	tc.script = true
	tc.reader = nil
	tc.started = true
}

// Feed appends text to the input buffer.
func (tc *Tape) Feed(text string) {
	if !tc.started {
		tc.Rewind()
	}
	tc.buffer = append(tc.buffer, text...)
}

// Pending returns the number of buffered input characters.
func (tc *Tape) Pending() int {
	return len(tc.buffer)
}

// readLine blocks until a line is available from Reader.
func (tc *Tape) readLine() (err error) {
	if tc.Reader == nil {
		err = ErrTapeEnd
		return
	}

	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Reader)
	}

	line, err := tc.reader.ReadString('\n')
	if len(line) > 0 && !strings.HasSuffix(line, "\n") {
		// Final line without a newline.
		line += "\n"
		err = nil
	}
	if err != nil {
		err = errors.Join(ErrTapeEnd, err)
		return
	}

	tc.buffer = append(tc.buffer, line...)
	tc.script = false

	return
}

// Input returns the next character.
func (tc *Tape) Input() (value int64, err error) {
	if !tc.started {
		tc.Rewind()
	}

	if len(tc.buffer) == 0 {
		err = tc.readLine()
		if err != nil {
			return
		}
	}

	ch := tc.buffer[0]
	tc.buffer = tc.buffer[1:]

	if tc.script && tc.Echo && tc.Writer != nil {
		tc.Writer.Write([]byte{ch})
	}

	value = int64(ch)
	return
}

// Output writes value as a character, or as a decimal line.
func (tc *Tape) Output(value int64) {
	if tc.Writer == nil {
		return
	}

	if value >= 0 && value < TAPE_ASCII_LIMIT {
		tc.Writer.Write([]byte{byte(value)})
		return
	}

	fmt.Fprintf(tc.Writer, "%d\n", value)
}

package cpu

import (
	"io"
	"strconv"
	"strings"
)

// Program is the initial memory image of an Intcode program.
type Program []int64

// ParseProgram parses a line of comma separated integers.
func ParseProgram(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	tokens := strings.Split(text, ",")
	prog = make(Program, 0, len(tokens))
	for n, token := range tokens {
		token = strings.TrimSpace(token)
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			err = &ErrParse{Index: n, Token: token, Err: err}
			prog = nil
			return
		}
		prog = append(prog, value)
	}

	return
}

// ReadProgram reads all of r, and parses it as a program.
func ReadProgram(r io.Reader) (prog Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	return ParseProgram(string(data))
}

// Clone returns an independent copy of the program.
func (prog Program) Clone() Program {
	dup := make(Program, len(prog))
	copy(dup, prog)
	return dup
}

// String returns the program in comma separated form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}
	return strings.Join(words, ",")
}

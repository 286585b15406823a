// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is a two pass macro assembler for Intcode programs.
//
// Each line holds an optional set of labels, followed by an instruction or
// directive:
//
//	loop:   in   [x]            ; positional operand
//	        mul  [x], #3, ~1    ; immediate and relative operands
//	        jnz  #1, #loop
//	x:      .data 0
//
// Values may be decimal or hexadecimal integers, labels, equates, 'c'
// character constants, or $(expr) Starlark expressions evaluated at link
// time over the equates and labels.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/cpu"
)

const (
	// MACRO_DEPTH_LIMIT is the maximum nesting of macro expansions.
	MACRO_DEPTH_LIMIT = 16
	// EQUATE_DEPTH_LIMIT is the maximum chain of equates referring to equates.
	EQUATE_DEPTH_LIMIT = 16
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Operand is an unresolved instruction operand.
type Operand struct {
	Mode  cpu.Mode
	Value string // Value expression, resolved when linking.
}

// Statement is a single assembled instruction or data directive.
type Statement struct {
	LineNo   int       // Source line number.
	Line     string    // Source line text.
	Ip       int64     // Address of the first emitted word.
	Op       cpu.Op    // Operation, if an instruction.
	Operands []Operand // Instruction operands.
	Data     []string  // Value expressions of a .data or .string directive.
}

// Size returns the number of words the statement emits.
func (stmt *Statement) Size() int64 {
	if stmt.Op.Valid() {
		return int64(1 + len(stmt.Operands))
	}

	return int64(len(stmt.Data))
}

// Assembler is a two pass macro assembler for Intcode. The first pass
// parses lines into statements and assigns addresses to labels; the second
// resolves all operand values.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of parsed statements.

	predefine map[string]string
	Label     map[string]int64    // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	depth     int // Current macro expansion depth.
	expansion int // Count of macro expansions, for @ local labels.
}

// Predefine defines a new equate or redefines an existing equate, applied at
// the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Assemble is a convenience wrapper that assembles text with a fresh
// assembler.
func Assemble(text string) (prog cpu.Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(text))
}

// Lookup returns the statement that emitted the word at ip.
func (asm *Assembler) Lookup(ip int64) (stmt *Statement, ok bool) {
	for n := range asm.Statement {
		stmt = &asm.Statement[n]
		if ip >= stmt.Ip && ip < stmt.Ip+stmt.Size() {
			return stmt, true
		}
	}

	return nil, false
}

// currentIp gets the address of the next emitted word.
func (asm *Assembler) currentIp() int64 {
	if len(asm.Statement) == 0 {
		return 0
	}

	last := &asm.Statement[len(asm.Statement)-1]

	return last.Ip + last.Size()
}

// stripComment removes a ';' comment, ignoring any ';' inside quotes.
func stripComment(text string) string {
	var quote rune
	escaped := false
	for n, ch := range text {
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ';':
			return text[:n]
		}
	}

	return text
}

// split splits a line into words at spaces and commas. Quoted text and
// parenthesized expressions are kept whole.
func split(line string) (words []string) {
	var word strings.Builder
	var quote rune
	escaped := false
	depth := 0

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, ch := range line {
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (ch == ',' || unicode.IsSpace(ch)):
			flush()
			continue
		}
		word.WriteRune(ch)
	}
	flush()

	return
}

var reCharacter = regexp.MustCompile(`'\\?[^']'`)

// characters replaces 'x' character constants with their decimal values.
func characters(word string) string {
	return reCharacter.ReplaceAllStringFunc(word, func(quoted string) string {
		str := quoted[1 : len(quoted)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return quoted
			}
		} else if len(str) != 1 {
			return quoted
		}
		return fmt.Sprintf("%v", str[0])
	})
}

// Parse parses an input stream into a program.
func (asm *Assembler) Parse(input io.Reader) (prog cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err == nil {
			return
		}
		if _, ok := err.(*ErrSyntax); !ok {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Statement = asm.Statement[:0]
	asm.Label = make(map[string]int64, 16)
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.depth = 0
	asm.expansion = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := split(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	return asm.link()
}

// parseLine parses a single line into labels and a statement.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	words := split(line)

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	stmt := Statement{LineNo: lineno, Line: line, Ip: asm.currentIp()}

	if words[0] != ".string" {
		for n := range words {
			words[n] = characters(words[n])
		}
	}

	// Alternate syntax substitutions
	switch {
	case len(words) == 2 && words[0] == "jmp":
		// jmp TARGET => jnz #1, #TARGET
		target := words[1]
		if !strings.ContainsAny(target[:1], "#~[") {
			target = "#" + target
		}
		words = []string{"jnz", "#1", target}
	case len(words) == 3 && words[0] == "mov":
		// mov SRC, DST => add SRC, #0, DST
		words = []string{"add", words[1], "#0", words[2]}
	}

	switch words[0] {
	case ".equ":
		// .equ NAME VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	case ".data":
		if len(words) < 2 {
			err = ErrOperandCount
			return
		}
		stmt.Data = words[1:]
	case ".string":
		if len(words) != 2 {
			err = ErrStringSyntax
			return
		}
		var text string
		text, err = strconv.Unquote(words[1])
		if err != nil {
			err = ErrStringSyntax
			return
		}
		for _, ch := range []byte(text) {
			stmt.Data = append(stmt.Data, strconv.Itoa(int(ch)))
		}
		if len(stmt.Data) == 0 {
			return
		}
	default:
		macro, ok := asm.Macro[words[0]]
		if ok {
			return asm.expand(words[0], macro, words[1:])
		}

		op, ok := cpu.OpByName(words[0])
		if !ok {
			err = ErrMnemonic
			return
		}
		stmt.Op = op

		args := words[1:]
		if len(args) != op.Params() {
			err = ErrOperandCount
			return
		}

		for n, arg := range args {
			var operand Operand
			operand, err = parseOperand(arg)
			if err != nil {
				return
			}
			if n == op.Writes() && operand.Mode == cpu.MODE_IMMEDIATE {
				err = ErrWriteImmediate
				return
			}
			stmt.Operands = append(stmt.Operands, operand)
		}
	}

	asm.Statement = append(asm.Statement, stmt)

	return
}

// parseOperand determines the addressing mode of an operand.
func parseOperand(word string) (operand Operand, err error) {
	switch {
	case strings.HasPrefix(word, "#"):
		operand = Operand{Mode: cpu.MODE_IMMEDIATE, Value: word[1:]}
	case strings.HasPrefix(word, "~"):
		operand = Operand{Mode: cpu.MODE_RELATIVE, Value: word[1:]}
	case strings.HasPrefix(word, "["):
		if !strings.HasSuffix(word, "]") {
			err = ErrParseValue(word)
			return
		}
		operand = Operand{Mode: cpu.MODE_POSITION, Value: word[1 : len(word)-1]}
	default:
		operand = Operand{Mode: cpu.MODE_POSITION, Value: word}
	}

	if len(operand.Value) == 0 {
		err = ErrParseValue(word)
	}

	return
}

// expand expands a macro invocation. '@' in the macro body is replaced by a
// prefix unique to this expansion.
func (asm *Assembler) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.depth >= MACRO_DEPTH_LIMIT {
		err = ErrMacroDepth
		return
	}

	asm.depth++
	defer func() { asm.depth-- }()

	asm.expansion++
	local := fmt.Sprintf("%v_%v_", name, asm.expansion)

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", local)
		for i, arg := range macro.Args {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(arg) + `\b`)
			line = re.ReplaceAllLiteralString(line, args[i])
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// link resolves all statement values into the final program.
func (asm *Assembler) link() (prog cpu.Program, err error) {
	prog = make(cpu.Program, 0, asm.currentIp())

	for n := range asm.Statement {
		stmt := &asm.Statement[n]

		var words []int64
		words, err = asm.emit(stmt)
		if err != nil {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Line, Err: err}
			prog = nil
			return
		}

		prog = append(prog, words...)
	}

	return
}

// emit resolves the words of a single statement.
func (asm *Assembler) emit(stmt *Statement) (words []int64, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(stmt.LineNo)

	if !stmt.Op.Valid() {
		for _, expr := range stmt.Data {
			var value int64
			value, err = asm.resolve(expr, 0)
			if err != nil {
				return
			}
			words = append(words, value)
		}
		return
	}

	word := int64(stmt.Op)
	scale := int64(100)
	words = append(words, 0)
	for _, operand := range stmt.Operands {
		var value int64
		value, err = asm.resolve(operand.Value, 0)
		if err != nil {
			return
		}
		word += int64(operand.Mode) * scale
		scale *= 10
		words = append(words, value)
	}
	words[0] = word

	return
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// resolve evaluates a value expression.
func (asm *Assembler) resolve(word string, depth int) (value int64, err error) {
	if depth > EQUATE_DEPTH_LIMIT {
		err = ErrParseValue(word)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2:len(word)-1], depth)
	}

	value, perr := strconv.ParseInt(word, 0, 64)
	if perr == nil {
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.resolve(equate, depth+1)
	}

	value, ok = asm.Label[word]
	if ok {
		return
	}

	if reIdentifier.MatchString(word) {
		err = ErrLabelMissing(word)
		return
	}

	err = ErrParseValue(word)
	return
}

var reName = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// parenEval does link time $(...) evaluations.
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for _, name := range reName.FindAllString(expr, -1) {
		_, is_equate := asm.Equate[name]
		_, is_label := asm.Label[name]
		if !is_equate && !is_label {
			continue
		}
		named, nerr := asm.resolve(name, depth+1)
		if nerr != nil {
			// Ignore unresolvable names; Starlark reports any use of them.
			continue
		}
		pred[name] = starlark.MakeInt64(named)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

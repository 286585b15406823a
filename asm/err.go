package asm

import (
	"errors"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroDepth      = errors.New(f(".macro expansion too deep"))
	ErrStringSyntax    = errors.New(f(".string syntax"))
	ErrMnemonic        = errors.New(f("mnemonic invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrWriteImmediate  = cpu.ErrWriteImmediate
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

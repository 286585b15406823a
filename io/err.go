package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Device errors
	ErrInputExhausted = errors.New(f("not enough inputs"))
	ErrQueueEmpty     = errors.New(f("queue empty"))
	ErrQueueClosed    = errors.New(f("queue closed"))
	ErrTapeEnd        = errors.New(f("tape input ended"))
)

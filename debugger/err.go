package debugger

import (
	"errors"

	"github.com/ezrec/nibble/translate"
)

var f = translate.From

var (
	ErrQuit = errors.New(f("debugger quit"))
)

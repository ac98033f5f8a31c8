package emulator

import (
	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint8
	Code   cpu.Code
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d pc %d (%v) %v", err.LineNo, err.Pc, err.Code.String(), err.Err)
	}
	return f("pc %d (%v) %v", err.Pc, err.Code.String(), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

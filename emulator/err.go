package emulator

import (
	"errors"

	"github.com/ezrec/assembunny/translate"
)

var f = translate.From

var (
	ErrClockNotFound = errors.New(f("clock seed not found"))
)

// ErrTickLimit indicates a run exhausted its tick budget.
type ErrTickLimit struct {
	Ticks int
}

func (err *ErrTickLimit) Error() string {
	return f("tick limit %v reached", err.Ticks)
}

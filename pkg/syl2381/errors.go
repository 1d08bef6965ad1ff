package syl2381

import (
	"errors"
	"fmt"
)

// Kind classifies a driver failure.
type Kind uint8

const (
	// KindTransport: the byte channel failed.
	KindTransport Kind = iota + 1
	// KindProtocol: a frame was rejected (check value, echo, byte count, exception).
	KindProtocol
	// KindUnexpectedValue: a wire value or a setter input is outside the parameter domain.
	KindUnexpectedValue
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindUnexpectedValue:
		return "unexpected value"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Sentinels for errors.Is.
var (
	ErrTransport       = errors.New("syl2381: transport error")
	ErrProtocol        = errors.New("syl2381: protocol error")
	ErrUnexpectedValue = errors.New("syl2381: unexpected value")
)

// Error is returned by every fallible driver operation.
type Error struct {
	Kind  Kind
	Op    string // get, set, coils
	Param Param
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("syl2381 %s %s: %s", e.Op, e.Param, e.Kind)
	}
	return fmt.Sprintf("syl2381 %s %s: %s: %v", e.Op, e.Param, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrUnexpectedValue:
		return e.Kind == KindUnexpectedValue
	}
	return false
}

// Code is the numeric error code reported by the link status block.
func (e *Error) Code() uint16 {
	return uint16(e.Kind)
}

func transportErr(op string, p Param, err error) error {
	return &Error{Kind: KindTransport, Op: op, Param: p, Err: err}
}

func protocolErr(op string, p Param, err error) error {
	return &Error{Kind: KindProtocol, Op: op, Param: p, Err: err}
}

func valueErr(op string, p Param, format string, args ...any) error {
	return &Error{Kind: KindUnexpectedValue, Op: op, Param: p, Err: fmt.Errorf(format, args...)}
}

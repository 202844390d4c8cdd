package errs

import (
	"errors"
	"fmt"
)

type ErrorCode uint

const (
	ErrUnknown ErrorCode = iota
	ErrInputFormat
	ErrGraphConsistency
	ErrQueueInvariant
	ErrIncompleteSearch
	ErrFormat
	ErrNotFound
	ErrIO
	ErrInvalidArgument
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInputFormat:
		return "input format error"
	case ErrGraphConsistency:
		return "graph consistency error"
	case ErrQueueInvariant:
		return "queue invariant violation"
	case ErrIncompleteSearch:
		return "incomplete search"
	case ErrFormat:
		return "format error"
	case ErrNotFound:
		return "not found"
	case ErrIO:
		return "io error"
	case ErrInvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

// Error. error dengan kode, buat bedain jenis error tanpa parsing message.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

func WrapErrorf(orig error, code ErrorCode, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code ErrorCode, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.orig)
	}

	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() ErrorCode {
	return e.code
}

// Is. true kalau err (atau error yang di-wrap nya) punya kode code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.code == code {
			return true
		}
		err = e.orig
	}
	return false
}

// Code. kode error terluar di err, ErrUnknown kalau err bukan *Error.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ErrUnknown
}

package core

import (
	"errors"
	"fmt"
)

var (
	ErrFetch               = errors.New("fetch transaction failed")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidSignature    = errors.New("invalid transaction signature")
	ErrMeta                = errors.New("transaction meta missing")
	ErrDecoding            = errors.New("transaction decoding failed")
	ErrAddress             = errors.New("invalid loaded address")
)

// FetchError 重试耗尽（或 context 结束）后的终态错误，Err 为最后一次失败原因
type FetchError struct {
	Signature string
	Attempts  int
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch transaction %s failed after %d attempts: %v", e.Signature, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// ParsingErrorKind 交易级结构错误的类别
type ParsingErrorKind int

const (
	ParsingMeta ParsingErrorKind = iota
	ParsingDecoding
	ParsingAddress
)

func (k ParsingErrorKind) String() string {
	switch k {
	case ParsingMeta:
		return "meta"
	case ParsingDecoding:
		return "decoding"
	case ParsingAddress:
		return "address"
	default:
		return "unknown"
	}
}

func (k ParsingErrorKind) sentinel() error {
	switch k {
	case ParsingMeta:
		return ErrMeta
	case ParsingAddress:
		return ErrAddress
	default:
		return ErrDecoding
	}
}

// ParsingError 交易级结构错误，对本次解析是致命的，且不重试
type ParsingError struct {
	Kind      ParsingErrorKind
	Signature string
	Err       error
}

func NewParsingError(kind ParsingErrorKind, signature string, err error) *ParsingError {
	return &ParsingError{Kind: kind, Signature: signature, Err: err}
}

func (e *ParsingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse transaction %s: %v", e.Signature, e.Kind.sentinel())
	}
	return fmt.Sprintf("parse transaction %s: %v: %v", e.Signature, e.Kind.sentinel(), e.Err)
}

func (e *ParsingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

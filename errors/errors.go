// Package errors 定义带错误码的结构化错误，HTTP 层和 CLI 按错误码处理。
//
//	err := errors.New(errors.ErrCodeInvalidInput, "宽度不是数字: %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // 丢弃本次修改
//	}
package errors

import (
	"errors"
	"fmt"
)

type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeNoFreeSpace      Code = "NO_FREE_SPACE"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeSessionNotFound  Code = "SESSION_NOT_FOUND"
	ErrCodeSubmissionFailed Code = "SUBMISSION_FAILED"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is 沿错误链查找指定错误码
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode 非 *Error 时返回空字符串
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage 去掉错误码前缀，用于展示给用户
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

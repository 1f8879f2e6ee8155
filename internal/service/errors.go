package service

import (
	"errors"
	"fmt"

	"pdd_wms_v1/internal/repository"
)

// ==================== 错误分类 ====================
// 仓库和服务层返回带类别的错误，接口层按类别映射固定状态码，
// 禁止根据错误文案推断类别

// ErrorKind 错误类别
type ErrorKind int

const (
	KindInternal     ErrorKind = iota // 内部错误
	KindValidation                    // 参数校验失败
	KindNotFound                      // 资源不存在
	KindConflict                      // 违反业务约束
	KindUnauthorized                  // 身份校验失败
)

// Error 业务错误
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation 参数校验错误
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFound 资源不存在
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewConflict 业务约束冲突
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewUnauthorized 身份校验失败
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewInternal 内部错误，底层原因只进日志不出响应
func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "系统内部错误", Err: err}
}

// fieldError 更新字段解析失败按校验错误处理，其余按内部错误
func fieldError(err error) *Error {
	var unknown *repository.UnknownFieldError
	if errors.As(err, &unknown) {
		return NewValidation(unknown.Error())
	}
	return NewInternal(err)
}

// KindOf 提取错误类别，未分类的一律按内部错误处理
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

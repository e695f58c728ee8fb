package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"gorm.io/gorm"
)

// Kind 错误分类
// 由传输层/存储层在产生错误时打上标签，控制器边界只负责按 Kind 渲染
type Kind int

const (
	KindUnknown           Kind = iota
	KindNotFound               // 帖子或店铺设置不存在
	KindCredentialMissing      // 未配置 Outblog API Key
	KindCredentialInvalid      // Outblog API Key 无效
	KindForbidden              // Outblog 订阅无权限
	KindRateLimited            // 上游限流
	KindUpstream               // 上游 5xx
	KindAuth                   // Shopify 会话/Token 失效
	KindNetwork                // 网络不可达
	KindTimeout                // 请求超时
	KindStore                  // 数据库错误
	KindValidation             // Shopify userErrors
	KindUnauthorized           // cron secret 不匹配 / webhook 签名错误
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindNotFound:          "not_found",
	KindCredentialMissing: "credential_missing",
	KindCredentialInvalid: "credential_invalid",
	KindForbidden:         "forbidden",
	KindRateLimited:       "rate_limited",
	KindUpstream:          "upstream",
	KindAuth:              "auth",
	KindNetwork:           "network",
	KindTimeout:           "timeout",
	KindStore:             "store",
	KindValidation:        "validation",
	KindUnauthorized:      "unauthorized",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Op      string // 出错的操作，如 "outblog.ListPosts"
	Field   string // Shopify userErrors 的字段路径
	Message string
	Status  int // 上游 HTTP 状态码 (可选)
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New 创建分类错误
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// NotFound 资源不存在
func NotFound(op, message string) *Error {
	return New(KindNotFound, op, message)
}

// Validation Shopify 字段级校验错误
func Validation(op, field, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: message}
}

// FromStatus 按上游 HTTP 状态码分类
func FromStatus(op string, status int) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindCredentialInvalid
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 500:
		kind = KindUpstream
	}
	return &Error{Kind: kind, Op: op, Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}

// KindOf 取错误分类，未打标签的错误先经过 Classify
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Classify("", err).Kind
}

// Classify 将传输层/存储层的原始错误归类
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	kind := KindUnknown
	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.As(err, &dnsErr), errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		kind = KindNetwork
	case errors.As(err, &urlErr):
		kind = KindNetwork
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = KindNotFound
	case isStoreError(err):
		kind = KindStore
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func isStoreError(err error) bool {
	for _, target := range []error{
		gorm.ErrInvalidTransaction, gorm.ErrInvalidDB, gorm.ErrInvalidData,
		gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated, gorm.ErrInvalidField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Store 将数据库错误标记为 KindStore (RecordNotFound 除外)
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Op: op, Err: err}
	}
	return &Error{Kind: KindStore, Op: op, Err: err}
}

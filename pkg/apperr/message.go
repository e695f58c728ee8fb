package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// UserMessage 面向商家的简短提示
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	kind := KindOf(err)
	switch kind {
	case KindNotFound:
		var ae *Error
		if errors.As(err, &ae) && ae.Message != "" {
			return ae.Message
		}
		return "Not found"
	case KindCredentialMissing:
		return "API key not configured"
	case KindCredentialInvalid:
		// 保存设置时校验失败，没有上游状态码
		var ae *Error
		if errors.As(err, &ae) && ae.Status == 0 && ae.Message != "" {
			return ae.Message
		}
		return "Invalid API key. Please check your Outblog API configuration."
	case KindForbidden:
		return "API access forbidden. Please check your subscription."
	case KindRateLimited:
		return "Rate limit exceeded. Please try again in a few minutes."
	case KindUpstream:
		var ae *Error
		if errors.As(err, &ae) && strings.HasPrefix(ae.Op, "shopify") {
			// GraphQL 顶层错误带有 Shopify 的原始说明
			if ae.Status == 0 && ae.Message != "" {
				return ae.Message
			}
			return "Shopify server error. Please try again later."
		}
		return "Outblog server error. Please try again later."
	case KindAuth:
		return "Authentication error. Please refresh the page and try again."
	case KindNetwork:
		return "Network error. Please check your connection and try again."
	case KindTimeout:
		return "Request timed out. Please try again."
	case KindStore:
		return "Database error. Please try again in a moment."
	case KindValidation:
		var ae *Error
		if errors.As(err, &ae) {
			if ae.Field != "" {
				return "Shopify API Error: " + ae.Field + ": " + ae.Message
			}
			return "Shopify API Error: " + ae.Message
		}
		return "Shopify API Error"
	case KindUnauthorized:
		return "Unauthorized"
	}

	var ae *Error
	if errors.As(err, &ae) {
		if ae.Status > 0 {
			return "Request failed (" + ae.Message + ")"
		}
		if ae.Message != "" {
			return ae.Message
		}
	}
	return "Something went wrong. Please try again. If the issue persists, contact support."
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindCredentialMissing, KindValidation:
		return http.StatusUnprocessableEntity
	case KindCredentialInvalid, KindForbidden, KindRateLimited, KindUpstream:
		return http.StatusBadGateway
	case KindAuth, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNetwork:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

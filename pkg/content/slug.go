package content

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultSlug  = "untitled"
	DefaultTitle = "Untitled"

	// Shopify 图片 altText 上限
	maxAltTextRunes = 125
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonHandleRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// PostSlug Outblog 帖子的本地 slug：优先使用接口返回的 slug，其次由标题生成
func PostSlug(slug, title string) string {
	if slug != "" {
		return slug
	}
	if title != "" {
		return whitespaceRe.ReplaceAllString(strings.ToLower(title), "-")
	}
	return DefaultSlug
}

// ArticleHandle Shopify 文章 handle，标题兜底时只保留 [a-z0-9-]
func ArticleHandle(slug, title string) string {
	if slug != "" {
		return slug
	}
	handle := nonHandleRe.ReplaceAllString(strings.ToLower(title), "-")
	handle = strings.Trim(handle, "-")
	if handle == "" {
		return DefaultSlug
	}
	return handle
}

// ImageURL 校验特色图片地址，只接受绝对 http/https 地址
func ImageURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return raw, true
}

// AltText 图片替代文本
func AltText(title string) string {
	if title == "" {
		return "Blog post image"
	}
	if utf8.RuneCountInString(title) <= maxAltTextRunes {
		return title
	}
	return string([]rune(title)[:maxAltTextRunes])
}

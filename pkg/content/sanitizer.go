// Package content 把 Outblog 的 markdown 风格正文转换成 Shopify 文章可用的 HTML。
//
// 这是启发式的单向转换，不是完整的 markdown 解析器。规则的先后顺序有依赖关系，
// 不要随意调整：
//   - 标题从 #### 到 #，先匹配更具体的
//   - 粗体在斜体之前
//   - 列表项先包成 <li> 再整体套 <ul>，必须在换行替换之前
//   - 图片在链接之前 (![alt](url) 的后半段就是链接语法)
package content

import (
	"regexp"
	"strings"
)

var (
	frontMatterRe = regexp.MustCompile(`\A---\s(?s:.*?)---\s*`)

	h4Re     = regexp.MustCompile(`(?m)^#### (.*)$`)
	h3Re     = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Re     = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Re     = regexp.MustCompile(`(?m)^# (.*)$`)
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	bulletRe = regexp.MustCompile(`(?m)^\* (.+)$`)
	listRe   = regexp.MustCompile(`(?s)(<li>.*</li>)`)
	imageRe  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// 换行已被替换成 <br> / </p><p>，独占一行的 --- 现在夹在这些分隔符之间
	hrRe = regexp.MustCompile(`(^|<br>|<p>)---(<br>|</p>|$)`)

	wrappedListRe = regexp.MustCompile(`(?s)<p>(<ul>.*?</ul>)</p>`)
)

// StripFrontMatter 去掉正文开头由 --- 包裹的元数据块
func StripFrontMatter(raw string) string {
	return frontMatterRe.ReplaceAllString(raw, "")
}

// HasMarkdown 正文是否包含需要转换的 markdown 标记
func HasMarkdown(s string) bool {
	return strings.ContainsAny(s, "#*[")
}

// ToArticleHTML 单篇发布时使用的完整转换
func ToArticleHTML(raw, title string) string {
	html := StripFrontMatter(raw)

	if strings.TrimSpace(html) == "" {
		if title == "" {
			title = "Untitled"
		}
		html = "<p>" + title + "</p>"
	}

	if !HasMarkdown(html) {
		return wrapParagraph(html)
	}

	html = h4Re.ReplaceAllString(html, "<h4>${1}</h4>")
	html = h3Re.ReplaceAllString(html, "<h3>${1}</h3>")
	html = h2Re.ReplaceAllString(html, "<h2>${1}</h2>")
	html = h1Re.ReplaceAllString(html, "<h1>${1}</h1>")

	html = boldRe.ReplaceAllString(html, "<strong>${1}</strong>")
	html = italicRe.ReplaceAllString(html, "<em>${1}</em>")

	html = bulletRe.ReplaceAllString(html, "<li>${1}</li>")
	html = listRe.ReplaceAllString(html, "<ul>${1}</ul>")

	html = imageRe.ReplaceAllString(html, `<img src="${2}" alt="${1}" />`)
	html = linkRe.ReplaceAllString(html, `<a href="${2}" target="_blank" rel="noopener noreferrer">${1}</a>`)

	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br>")

	html = replaceHorizontalRules(html)
	html = wrappedListRe.ReplaceAllString(html, "${1}")

	return wrapParagraph(html)
}

// replaceHorizontalRules 相邻的 --- 共用中间的 <br>，一次替换只能处理其中一个
func replaceHorizontalRules(html string) string {
	for {
		next := hrRe.ReplaceAllString(html, "${1}<hr>${2}")
		if next == html {
			return html
		}
		html = next
	}
}

func wrapParagraph(html string) string {
	if strings.HasPrefix(html, "<") {
		return html
	}
	return "<p>" + html + "</p>"
}

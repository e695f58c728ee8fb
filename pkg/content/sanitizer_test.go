package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"无元数据", "hello", "hello"},
		{"开头元数据", "---\ntitle: x\ndate: y\n---\n\nBody", "Body"},
		{"未闭合", "---\ntitle: x\nBody", "---\ntitle: x\nBody"},
		{"正文中的分隔线不处理", "Intro\n---\nmore\n---\n", "Intro\n---\nmore\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFrontMatter(tt.in))
		})
	}
}

func TestToArticleHTML_Placeholder(t *testing.T) {
	assert.Equal(t, "<p>My Title</p>", ToArticleHTML("", "My Title"))
	assert.Equal(t, "<p>My Title</p>", ToArticleHTML("---\na: b\n---\n   \n", "My Title"))
	assert.Equal(t, "<p>Untitled</p>", ToArticleHTML("  ", ""))
}

func TestToArticleHTML_PlainText(t *testing.T) {
	assert.Equal(t, "<p>just words</p>", ToArticleHTML("just words", "t"))
	assert.Equal(t, "<div>x</div>", ToArticleHTML("<div>x</div>", "t"))
}

func TestToArticleHTML_RuleOrdering(t *testing.T) {
	got := ToArticleHTML("#### H4\n**bold** *italic*\n* item one\n* item two", "t")

	assert.True(t, strings.HasPrefix(got, "<h4>H4</h4>"), got)
	assert.NotContains(t, got, "<h1>")
	assert.Contains(t, got, "<strong>bold</strong> <em>italic</em>")
	assert.Equal(t, 1, strings.Count(got, "<ul>"))
	assert.Equal(t, 1, strings.Count(got, "</ul>"))
	assert.Contains(t, got, "<ul><li>item one</li><br><li>item two</li></ul>")
}

func TestToArticleHTML_Headings(t *testing.T) {
	got := ToArticleHTML("# One\n## Two\n### Three", "t")
	assert.Equal(t, "<h1>One</h1><br><h2>Two</h2><br><h3>Three</h3>", got)
}

func TestToArticleHTML_ImageBeforeLink(t *testing.T) {
	got := ToArticleHTML("See ![cat](https://x.io/c.png) and [docs](https://x.io)", "t")

	assert.Equal(t,
		`<p>See <img src="https://x.io/c.png" alt="cat" /> and <a href="https://x.io" target="_blank" rel="noopener noreferrer">docs</a></p>`,
		got)
}

func TestToArticleHTML_Paragraphs(t *testing.T) {
	got := ToArticleHTML("# Title\n\nFirst line\nsecond line", "t")
	assert.Equal(t, "<h1>Title</h1></p><p>First line<br>second line", got)
}

func TestToArticleHTML_UnwrapList(t *testing.T) {
	got := ToArticleHTML("Intro *x*\n\n* a\n* b\n\nOutro", "t")

	assert.NotContains(t, got, "<p><ul>")
	assert.Contains(t, got, "<ul><li>a</li><br><li>b</li></ul>")
}

func TestToArticleHTML_HorizontalRule(t *testing.T) {
	got := ToArticleHTML("# A\n---\nB", "t")
	assert.Equal(t, "<h1>A</h1><br><hr><br>B", got)

	got = ToArticleHTML("# a\n---\n---\nb", "t")
	assert.Equal(t, "<h1>a</h1><br><hr><br><hr><br>b", got)

	got = ToArticleHTML("**a**\n\n---\n---\n---", "t")
	assert.Equal(t, "<strong>a</strong></p><p><hr><br><hr><br><hr>", got)
}

func TestToArticleHTML_FrontMatterThenMarkdown(t *testing.T) {
	got := ToArticleHTML("---\ntitle: Hello\n---\n## Sub", "t")
	assert.Equal(t, "<h2>Sub</h2>", got)
}

package shopify

import (
	"fmt"
	"strings"
)

// NumericID gid://shopify/Article/123 -> 123
func NumericID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

// ArticleEditorURL 后台文章编辑页
func ArticleEditorURL(shop, articleGID string) string {
	return fmt.Sprintf("https://%s/admin/articles/%s", shop, NumericID(articleGID))
}

// ArticleLiveURL 店铺前台文章地址
func ArticleLiveURL(shop, blogHandle, articleHandle string) string {
	return fmt.Sprintf("https://%s/blogs/%s/%s", shop, blogHandle, articleHandle)
}

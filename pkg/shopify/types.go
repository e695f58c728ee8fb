package shopify

// Credentials 调用 Admin API 所需的店铺与离线 token
type Credentials struct {
	Shop        string
	AccessToken string
}

// Blog Shopify 博客
type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Article 创建成功的文章
type Article struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// ArticleImage 文章特色图片
type ArticleImage struct {
	AltText string `json:"altText"`
	URL     string `json:"url"`
}

type ArticleAuthor struct {
	Name string `json:"name"`
}

// ArticleInput articleCreate 的参数
type ArticleInput struct {
	BlogID      string        `json:"blogId"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	Handle      string        `json:"handle"`
	IsPublished bool          `json:"isPublished"`
	Author      ArticleAuthor `json:"author"`
	Image       *ArticleImage `json:"image,omitempty"`
}

// UserError mutation 的字段级错误
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// AccessToken token exchange 返回
type AccessToken struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ==================== GraphQL 包装 ====================

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

const (
	queryBlogs = `query getBlogs($query: String) {
  blogs(first: 50, query: $query) {
    edges { node { id title handle } }
  }
}`

	mutationBlogCreate = `mutation createBlog($blog: BlogCreateInput!) {
  blogCreate(blog: $blog) {
    blog { id title handle }
    userErrors { field message }
  }
}`

	mutationArticleCreate = `mutation createArticle($article: ArticleCreateInput!) {
  articleCreate(article: $article) {
    article { id title handle }
    userErrors { field message }
  }
}`

	queryNodes = `query CheckArticlesStatus($ids: [ID!]!) {
  nodes(ids: $ids) {
    __typename
    ... on Article { id publishedAt }
  }
}`
)

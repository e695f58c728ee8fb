package outblog

// Post Outblog 帖子
type Post struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	FeaturedImage *string   `json:"featured_image"`
	MetaData      *MetaData `json:"blog_meta_data"`
}

// MetaData SEO 元数据
type MetaData struct {
	MetaDescription *string  `json:"meta_description"`
	Categories      []string `json:"categories"`
	Tags            []string `json:"tags"`
}

// postsEnvelope {"data": {"posts": [...]}}
type postsEnvelope struct {
	Data *struct {
		Posts []Post `json:"posts"`
	} `json:"data"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

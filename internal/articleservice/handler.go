package articleservice

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gosimple/slug"

	"github.com/sushihentaime/inkwell/internal/common"
)

func NewArticleService(db *sql.DB) *ArticleService {
	return &ArticleService{m: newArticleModel(db)}
}

// CreateArticleRequest carries only the writable fields. The author comes
// from the authenticated request; slug, views and timestamps are always
// server computed. The RawMessage fields accept and discard the
// server-computed names, so a client supplying them gets the computed
// values back instead of an unknown field error.
type CreateArticleRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	IsPublished bool   `json:"is_published"`
	CategoryID  *int   `json:"category_id"`
	TagIDs      []int  `json:"tag_ids"`
	AuthorID    int    `json:"-"`

	Author    json.RawMessage `json:"author"`
	Views     json.RawMessage `json:"views"`
	Slug      json.RawMessage `json:"slug"`
	CreatedAt json.RawMessage `json:"created_at"`
	UpdatedAt json.RawMessage `json:"updated_at"`
}

func (s *ArticleService) CreateArticle(ctx context.Context, req *CreateArticleRequest) (*Article, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateExcerpt(v, req.Excerpt)
	validateInt(v, req.AuthorID, "user_id")
	if req.CategoryID != nil {
		validateInt(v, *req.CategoryID, "category_id")
	}
	for _, tagID := range req.TagIDs {
		validateInt(v, tagID, "tag_ids")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a := Article{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		IsPublished: req.IsPublished,
		Author:      Author{ID: req.AuthorID},
	}

	err := s.m.insert(ctx, &a, req.CategoryID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	return s.m.getArticleById(ctx, a.ID)
}

// GetArticleByID returns an article without touching the view counter.
func (s *ArticleService) GetArticleByID(ctx context.Context, id int) (*Article, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getArticleById(ctx, id)
}

// ViewArticle returns an article after incrementing its view counter.
func (s *ArticleService) ViewArticle(ctx context.Context, id int) (*Article, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getArticleAndIncrementViews(ctx, id)
}

// GetArticles lists articles. search filters by substring over title,
// content and excerpt; ordering accepts created_at, views or title with an
// optional leading "-". Default limit is 10 and default offset is 0.
func (s *ArticleService) GetArticles(ctx context.Context, search, ordering string, limit, offset *int) ([]Article, error) {
	v := common.NewValidator()
	orderBy := validateOrdering(v, ordering)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if limit == nil || *limit < 1 {
		limit = new(int)
		*limit = 10
	}

	if offset == nil || *offset < 0 {
		offset = new(int)
	}

	return s.m.getArticles(ctx, search, orderBy, *limit, *offset)
}

type UpdateArticleRequest struct {
	ID          int     `json:"-"`
	AuthorID    int     `json:"-"`
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	IsPublished *bool   `json:"is_published"`
	CategoryID  *int    `json:"category_id"`
	TagIDs      []int   `json:"tag_ids"`

	// accepted and discarded, same as on create
	Author    json.RawMessage `json:"author"`
	Views     json.RawMessage `json:"views"`
	Slug      json.RawMessage `json:"slug"`
	CreatedAt json.RawMessage `json:"created_at"`
	UpdatedAt json.RawMessage `json:"updated_at"`
}

// UpdateArticle applies a partial update to an article owned by AuthorID.
// A changed title re-derives the slug.
func (s *ArticleService) UpdateArticle(ctx context.Context, req *UpdateArticleRequest) (*Article, error) {
	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateInt(v, req.AuthorID, "user_id")
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
	if req.Excerpt != nil {
		validateExcerpt(v, *req.Excerpt)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a, err := s.m.getArticleById(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
		a.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Excerpt != nil {
		a.Excerpt = *req.Excerpt
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
	}

	categoryID := req.CategoryID
	if categoryID == nil && a.Category != nil {
		categoryID = &a.Category.ID
	}

	a.Author.ID = req.AuthorID

	err = s.m.updateArticle(ctx, a, categoryID, req.TagIDs, req.TagIDs != nil)
	if err != nil {
		return nil, err
	}

	return s.m.getArticleById(ctx, a.ID)
}

// DeleteArticle deletes an article owned by userId.
func (s *ArticleService) DeleteArticle(ctx context.Context, articleId, userId int) error {
	v := common.NewValidator()
	validateInt(v, articleId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteArticle(ctx, articleId, userId)
}

type SearchRequest struct {
	ID       *int
	Query    string
	Category string
	Tag      string
}

// SearchArticles composes the public search over published articles. An id
// short-circuits the other filters and yields exactly one article or none.
func (s *ArticleService) SearchArticles(ctx context.Context, req *SearchRequest) ([]Article, error) {
	if req.ID != nil {
		v := common.NewValidator()
		validateInt(v, *req.ID, "id")
		if !v.Valid() {
			return nil, v.ValidationError()
		}

		a, err := s.m.getPublishedById(ctx, *req.ID)
		if err != nil {
			return nil, err
		}

		return []Article{*a}, nil
	}

	return s.m.searchPublished(ctx, req.Query, req.Category, req.Tag)
}

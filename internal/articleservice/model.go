package articleservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateSlug      = errors.New("duplicate slug")
	ErrUserForeignKey     = errors.New("user_id does not exist")
	ErrCategoryForeignKey = errors.New("category_id does not exist")
	ErrTagForeignKey      = errors.New("tag_id does not exist")
)

func newArticleModel(db *sql.DB) *ArticleModel {
	return &ArticleModel{db: db}
}

const articleColumns = `
	a.id, a.title, a.slug, a.content, a.excerpt, a.views, a.is_published,
	a.created_at, a.updated_at, a.version,
	u.id, u.username, u.email, u.first_name, u.last_name, c.id, c.name, c.slug`

func scanArticle(row interface{ Scan(dest ...any) error }, a *Article) error {
	var categoryID sql.NullInt64
	var categoryName, categorySlug sql.NullString

	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.Views, &a.IsPublished,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &a.Author.FirstName, &a.Author.LastName,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return err
	}

	if categoryID.Valid {
		a.Category = &CategoryRef{
			ID:   int(categoryID.Int64),
			Name: categoryName.String,
			Slug: categorySlug.String,
		}
	}

	return nil
}

func (m *ArticleModel) insert(ctx context.Context, a *Article, categoryID *int, tagIDs []int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (title, slug, content, excerpt, is_published, user_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at, updated_at, version`

	err = tx.QueryRowContext(ctx, query, a.Title, a.Slug, a.Content, a.Excerpt, a.IsPublished, a.Author.ID, categoryID).Scan(&a.ID, &a.Views, &a.CreatedAt, &a.UpdatedAt, &a.Version)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "articles_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyError(err, "articles_user_id_fkey"):
			return ErrUserForeignKey
		case common.ForeignKeyError(err, "articles_category_id_fkey"):
			return ErrCategoryForeignKey
		default:
			return err
		}
	}

	err = insertArticleTags(tx, ctx, a.ID, tagIDs)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertArticleTags(tx *sql.Tx, ctx context.Context, articleID int, tagIDs []int) error {
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, "INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", articleID, tagID)
		if err != nil {
			switch {
			case common.ForeignKeyError(err, "article_tags_tag_id_fkey"):
				return ErrTagForeignKey
			default:
				return err
			}
		}
	}

	return nil
}

func (m *ArticleModel) getArticleById(ctx context.Context, id int) (*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.id = $1`

	var a Article
	err := scanArticle(m.db.QueryRowContext(ctx, query, id), &a)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	tags, err := m.loadTags(ctx, []int{a.ID})
	if err != nil {
		return nil, err
	}
	a.Tags = tags[a.ID]

	return &a, nil
}

// getArticleAndIncrementViews bumps the view counter and reads the article
// in one transaction, so the returned row always carries the persisted
// count including this read.
func (m *ArticleModel) getArticleAndIncrementViews(ctx context.Context, id int) (*Article, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE articles a
		SET views = views + 1
		FROM users u
		WHERE a.id = $1 AND a.user_id = u.id
		RETURNING a.id, a.title, a.slug, a.content, a.excerpt, a.views, a.is_published,
			a.created_at, a.updated_at, a.version,
			u.id, u.username, u.email, u.first_name, u.last_name, a.category_id`

	var a Article
	var categoryID sql.NullInt64
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.Views, &a.IsPublished,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &a.Author.FirstName, &a.Author.LastName,
		&categoryID,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if categoryID.Valid {
		var c CategoryRef
		err = tx.QueryRowContext(ctx, "SELECT id, name, slug FROM categories WHERE id = $1", categoryID.Int64).Scan(&c.ID, &c.Name, &c.Slug)
		if err != nil {
			return nil, err
		}
		a.Category = &c
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1
		ORDER BY t.name ASC`, a.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t TagRef
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		a.Tags = append(a.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &a, nil
}

// getArticles lists articles with an optional substring filter over title,
// content and excerpt. orderBy must already be a whitelisted fragment.
func (m *ArticleModel) getArticles(ctx context.Context, search, orderBy string, limit, offset int) ([]Article, error) {
	query := fmt.Sprintf(`
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE ($1 = '' OR a.title ILIKE '%%' || $1 || '%%' OR a.content ILIKE '%%' || $1 || '%%' OR a.excerpt ILIKE '%%' || $1 || '%%')
		ORDER BY %s
		LIMIT $2 OFFSET $3`, orderBy)

	rows, err := m.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, err
	}

	return m.attachTags(ctx, articles)
}

// searchPublished composes the public search: all supplied filters are
// ANDed, the q term ORs over title and content, and only published
// articles are eligible. DISTINCT folds duplicate rows produced by
// multi-tag matches.
func (m *ArticleModel) searchPublished(ctx context.Context, q, category, tag string) ([]Article, error) {
	query := `
		SELECT DISTINCT ` + articleColumns + `
		FROM articles a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		LEFT JOIN article_tags at ON at.article_id = a.id
		LEFT JOIN tags t ON t.id = at.tag_id
		WHERE a.is_published = true
			AND ($1 = '' OR a.title ILIKE '%' || $1 || '%' OR a.content ILIKE '%' || $1 || '%')
			AND ($2 = '' OR c.name ILIKE '%' || $2 || '%')
			AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
		ORDER BY a.created_at DESC, a.id`

	rows, err := m.db.QueryContext(ctx, query, q, category, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return nil, ErrRecordNotFound
	}

	return m.attachTags(ctx, articles)
}

func (m *ArticleModel) getPublishedById(ctx context.Context, id int) (*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.id = $1 AND a.is_published = true`

	var a Article
	err := scanArticle(m.db.QueryRowContext(ctx, query, id), &a)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	tags, err := m.loadTags(ctx, []int{a.ID})
	if err != nil {
		return nil, err
	}
	a.Tags = tags[a.ID]

	return &a, nil
}

func (m *ArticleModel) updateArticle(ctx context.Context, a *Article, categoryID *int, tagIDs []int, replaceTags bool) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE articles
		SET title = $1, slug = $2, content = $3, excerpt = $4, is_published = $5,
			category_id = $6, updated_at = now(), version = version + 1
		WHERE id = $7 AND version = $8 AND user_id = $9
		RETURNING views, created_at, updated_at, version`

	err = tx.QueryRowContext(ctx, query, a.Title, a.Slug, a.Content, a.Excerpt, a.IsPublished, categoryID, a.ID, a.Version, a.Author.ID).Scan(&a.Views, &a.CreatedAt, &a.UpdatedAt, &a.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case common.UniqueViolationError(err, "articles_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyError(err, "articles_category_id_fkey"):
			return ErrCategoryForeignKey
		default:
			return err
		}
	}

	if replaceTags {
		_, err = tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = $1", a.ID)
		if err != nil {
			return err
		}

		err = insertArticleTags(tx, ctx, a.ID, tagIDs)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (m *ArticleModel) deleteArticle(ctx context.Context, articleId, userId int) error {
	query := `
		DELETE FROM articles
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, articleId, userId)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func collectArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var a Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// loadTags fetches the tags for a set of article ids in one query.
func (m *ArticleModel) loadTags(ctx context.Context, articleIDs []int) (map[int][]TagRef, error) {
	query := `
		SELECT at.article_id, t.id, t.name, t.slug
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name ASC`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(articleIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int][]TagRef)
	for rows.Next() {
		var articleID int
		var t TagRef
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags[articleID] = append(tags[articleID], t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (m *ArticleModel) attachTags(ctx context.Context, articles []Article) ([]Article, error) {
	if len(articles) == 0 {
		return articles, nil
	}

	ids := make([]int, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	tags, err := m.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].Tags = tags[articles[i].ID]
	}

	return articles, nil
}

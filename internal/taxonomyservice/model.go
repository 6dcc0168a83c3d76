package taxonomyservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

func newTaxonomyModel(db *sql.DB) *TaxonomyModel {
	return &TaxonomyModel{db: db}
}

func (m *TaxonomyModel) insertCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, c.Name, c.Slug).Scan(&c.ID)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "categories_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *TaxonomyModel) getCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		ORDER BY name ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		err := rows.Scan(&c.ID, &c.Name, &c.Slug)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (m *TaxonomyModel) getCategoryById(ctx context.Context, id int) (*Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE id = $1`

	var c Category
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *TaxonomyModel) updateCategory(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, c.Name, c.Slug, c.ID)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "categories_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *TaxonomyModel) deleteCategory(ctx context.Context, id int) error {
	query := `
		DELETE FROM categories
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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

func (m *TaxonomyModel) insertTag(ctx context.Context, t *Tag) error {
	query := `
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, t.Name, t.Slug).Scan(&t.ID)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "tags_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *TaxonomyModel) getTags(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT id, name, slug
		FROM tags
		ORDER BY name ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		err := rows.Scan(&t.ID, &t.Name, &t.Slug)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (m *TaxonomyModel) getTagById(ctx context.Context, id int) (*Tag, error) {
	query := `
		SELECT id, name, slug
		FROM tags
		WHERE id = $1`

	var t Tag
	err := m.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &t, nil
}

func (m *TaxonomyModel) updateTag(ctx context.Context, t *Tag) error {
	query := `
		UPDATE tags
		SET name = $1, slug = $2
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, t.Name, t.Slug, t.ID)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "tags_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *TaxonomyModel) deleteTag(ctx context.Context, id int) error {
	query := `
		DELETE FROM tags
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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

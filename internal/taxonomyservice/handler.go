package taxonomyservice

import (
	"context"
	"database/sql"

	"github.com/gosimple/slug"

	"github.com/sushihentaime/inkwell/internal/common"
)

func NewTaxonomyService(db *sql.DB) *TaxonomyService {
	return &TaxonomyService{m: newTaxonomyModel(db)}
}

// CreateCategory creates a category. The slug is derived from the name; a
// slug collision is reported as a validation error on the name field.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Category{
		Name: name,
		Slug: slug.Make(name),
	}

	err := s.m.insertCategory(ctx, &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *TaxonomyService) GetCategories(ctx context.Context) ([]Category, error) {
	return s.m.getCategories(ctx)
}

func (s *TaxonomyService) GetCategoryByID(ctx context.Context, id int) (*Category, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCategoryById(ctx, id)
}

// UpdateCategory renames a category and re-derives its slug.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, id int, name string) (*Category, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Category{
		ID:   id,
		Name: name,
		Slug: slug.Make(name),
	}

	err := s.m.updateCategory(ctx, &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteCategory(ctx, id)
}

// CreateTag creates a tag. Slug handling mirrors CreateCategory.
func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*Tag, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t := Tag{
		Name: name,
		Slug: slug.Make(name),
	}

	err := s.m.insertTag(ctx, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *TaxonomyService) GetTags(ctx context.Context) ([]Tag, error) {
	return s.m.getTags(ctx)
}

func (s *TaxonomyService) GetTagByID(ctx context.Context, id int) (*Tag, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getTagById(ctx, id)
}

func (s *TaxonomyService) UpdateTag(ctx context.Context, id int, name string) (*Tag, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t := Tag{
		ID:   id,
		Name: name,
		Slug: slug.Make(name),
	}

	err := s.m.updateTag(ctx, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteTag(ctx, id)
}

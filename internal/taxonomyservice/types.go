package taxonomyservice

import "database/sql"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TaxonomyModel struct {
	db *sql.DB
}

type TaxonomyService struct {
	m *TaxonomyModel
}

package articleservice

import (
	"database/sql"
	"time"
)

// Author, CategoryRef and TagRef are the nested read shapes embedded in an
// article response. Write requests reference categories and tags by id only.
type Author struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Article struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Content     string       `json:"content"`
	Excerpt     string       `json:"excerpt"`
	Views       int          `json:"views"`
	IsPublished bool         `json:"is_published"`
	Author      Author       `json:"author"`
	Category    *CategoryRef `json:"category"`
	Tags        []TagRef     `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Version     int          `json:"-"`
}

type ArticleModel struct {
	db *sql.DB
}

type ArticleService struct {
	m *ArticleModel
}

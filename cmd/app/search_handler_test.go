package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	_, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	var categoryId, tagId int
	err = db.QueryRow("INSERT INTO categories (name, slug) VALUES ('Programming', 'programming') RETURNING id").Scan(&categoryId)
	assert.NoError(t, err)
	err = db.QueryRow("INSERT INTO tags (name, slug) VALUES ('Go', 'go') RETURNING id").Scan(&tagId)
	assert.NoError(t, err)

	publishedId, err := createTestArticle(db, *userId, "Learning Go Concurrency", "learning-go-concurrency", true)
	assert.NoError(t, err)
	draftId, err := createTestArticle(db, *userId, "Unfinished Draft", "unfinished-draft", false)
	assert.NoError(t, err)

	_, err = db.Exec("UPDATE articles SET category_id = $1 WHERE id = $2", categoryId, publishedId)
	assert.NoError(t, err)
	_, err = db.Exec("INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)", publishedId, tagId)
	assert.NoError(t, err)

	t.Run("Query Matches Title", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?q=concurrency", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])

		results := gotBody["results"].([]any)
		assert.Equal(t, "Learning Go Concurrency", results[0].(map[string]any)["title"])
	})

	t.Run("Query Matches Content", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?q=test+article", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])
	})

	t.Run("Drafts Are Excluded", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?q=Unfinished", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, envelope{"error": "no articles matched your search"}.JSON(), gotBody.JSON())
	})

	t.Run("Category Filter", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?category=programming", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])
	})

	t.Run("Tag Filter", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?tag=go", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])
	})

	t.Run("Query And Category Must Both Match", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/search?q=concurrency&category=cooking", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("ID Short Circuits Other Filters", func(t *testing.T) {
		status, _, gotBody := ts.get(t, fmt.Sprintf("/v1/search?id=%d&q=nomatch", publishedId), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])

		results := gotBody["results"].([]any)
		assert.Equal(t, float64(publishedId), results[0].(map[string]any)["id"])
	})

	t.Run("ID Of Draft Is Not Found", func(t *testing.T) {
		status, _, gotBody := ts.get(t, fmt.Sprintf("/v1/search?id=%d", draftId), nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, envelope{"error": "no articles matched your search"}.JSON(), gotBody.JSON())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/search?id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, envelope{"error": "invalid id parameter"}.JSON(), gotBody.JSON())
	})

	t.Run("Article With Two Matching Tags Appears Once", func(t *testing.T) {
		var secondTagId int
		err := db.QueryRow("INSERT INTO tags (name, slug) VALUES ('Golang', 'golang') RETURNING id").Scan(&secondTagId)
		assert.NoError(t, err)
		_, err = db.Exec("INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)", publishedId, secondTagId)
		assert.NoError(t, err)

		status, _, gotBody := ts.get(t, "/v1/search?tag=go", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])

		results := gotBody["results"].([]any)
		assert.Len(t, results[0].(map[string]any)["tags"].([]any), 2)
	})

	t.Run("Search Does Not Touch View Counts", func(t *testing.T) {
		var before int
		err := db.QueryRow("SELECT views FROM articles WHERE id = $1", publishedId).Scan(&before)
		assert.NoError(t, err)

		status, _, _ := ts.get(t, "/v1/search?q=concurrency", nil)
		assert.Equal(t, http.StatusOK, status)

		var after int
		err = db.QueryRow("SELECT views FROM articles WHERE id = $1", publishedId).Scan(&after)
		assert.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestSearchArticlesByTextHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	_, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	_, err = createTestArticle(db, *userId, "Published Piece", "published-piece", true)
	assert.NoError(t, err)
	_, err = createTestArticle(db, *userId, "Unfinished Draft", "unfinished-draft", false)
	assert.NoError(t, err)

	t.Run("Matches Title", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/search?q=piece", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])
	})

	t.Run("Drafts Are Included", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/search?q=unfinished", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])

		results := gotBody["results"].([]any)
		assert.Equal(t, "Unfinished Draft", results[0].(map[string]any)["title"])
	})

	t.Run("Matches Excerpt", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/search?q=excerpt", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), gotBody["count"])
	})

	t.Run("Missing Query", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/search", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, envelope{"error": map[string]string{"q": "must be provided"}}.JSON(), gotBody.JSON())
	})

	t.Run("No Match Is An Empty List", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/search?q=zzzzzz", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(0), gotBody["count"])
		assert.Empty(t, gotBody["results"])
	})
}

package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateArticleHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, _, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	var categoryId, tagId int
	err = db.QueryRow("INSERT INTO categories (name, slug) VALUES ('Go', 'go') RETURNING id").Scan(&categoryId)
	assert.NoError(t, err)
	err = db.QueryRow("INSERT INTO tags (name, slug) VALUES ('Testing', 'testing') RETURNING id").Scan(&tagId)
	assert.NoError(t, err)

	testCases := []struct {
		name       string
		payload    any
		token      *string
		wantStatus int
		wantBody   envelope
	}{
		{
			name: "Valid Request",
			payload: map[string]any{
				"title":        "My First Article",
				"content":      "This is the article body.",
				"excerpt":      "A short excerpt",
				"is_published": true,
				"category_id":  categoryId,
				"tag_ids":      []int{tagId},
			},
			token:      token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Empty Title",
			payload: map[string]any{
				"title":   "",
				"content": "This is the article body.",
			},
			token:      token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Title",
			payload: map[string]any{
				"title":   "My First Article",
				"content": "Another body.",
			},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"title": "an article with this title already exists"}},
		},
		{
			name: "Missing Category",
			payload: map[string]any{
				"title":       "Another Article",
				"content":     "This is the article body.",
				"category_id": 999999,
			},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"category_id": "this category does not exist"}},
		},
		{
			name: "No Authentication Token",
			payload: map[string]any{
				"title":   "Another Article",
				"content": "This is the article body.",
			},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
			wantBody:   envelope{"error": "invalid or missing authentication token"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, gotBody := ts.post(t, "/v1/articles", tc.payload, tc.token)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.JSONEq(t, tc.wantBody.JSON(), gotBody.JSON())
			}

			if status == http.StatusCreated {
				article := gotBody["article"].(map[string]any)
				assert.Equal(t, "My First Article", article["title"])
				assert.Equal(t, "my-first-article", article["slug"])
				assert.Equal(t, float64(0), article["views"])
				assert.Equal(t, "testuser", article["author"].(map[string]any)["username"])
				assert.Equal(t, "Go", article["category"].(map[string]any)["name"])
				assert.Len(t, article["tags"].([]any), 1)
			}
		})
	}

	t.Run("Client Supplied Read Only Fields Are Ignored", func(t *testing.T) {
		status, _, gotBody := ts.post(t, "/v1/articles", map[string]any{
			"title":   "Round Trip Article",
			"content": "This is the article body.",
			"author":  42,
			"views":   99,
			"slug":    "client-chosen-slug",
		}, token)
		assert.Equal(t, http.StatusCreated, status)

		article := gotBody["article"].(map[string]any)
		assert.Equal(t, "round-trip-article", article["slug"])
		assert.Equal(t, float64(0), article["views"])
		assert.Equal(t, "testuser", article["author"].(map[string]any)["username"])
		assert.Equal(t, "testuser@example.com", article["author"].(map[string]any)["email"])
	})
}

func TestGetArticleHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	_, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
	assert.NoError(t, err)

	t.Run("Each View Increments The Counter", func(t *testing.T) {
		status, _, gotBody := ts.get(t, fmt.Sprintf("/v1/articles/%d", articleId), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["article"].(map[string]any)["views"])

		status, _, gotBody = ts.get(t, fmt.Sprintf("/v1/articles/%d", articleId), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), gotBody["article"].(map[string]any)["views"])
	})

	t.Run("Missing Article", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/999999", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, envelope{"error": "resource not found"}.JSON(), gotBody.JSON())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles/abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, envelope{"error": "invalid ID parameter"}.JSON(), gotBody.JSON())
	})
}

func TestListArticlesHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	_, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	_, err = createTestArticle(db, *userId, "Learning Go", "learning-go", true)
	assert.NoError(t, err)
	_, err = createTestArticle(db, *userId, "Cooking Pasta", "cooking-pasta", false)
	assert.NoError(t, err)

	t.Run("List All", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), gotBody["count"])
	})

	t.Run("Search Filter", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles?search=Pasta", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])

		results := gotBody["results"].([]any)
		assert.Equal(t, "Cooking Pasta", results[0].(map[string]any)["title"])
	})

	t.Run("Ordering By Title", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles?ordering=title", nil)
		assert.Equal(t, http.StatusOK, status)

		results := gotBody["results"].([]any)
		assert.Equal(t, "Cooking Pasta", results[0].(map[string]any)["title"])
		assert.Equal(t, "Learning Go", results[1].(map[string]any)["title"])
	})

	t.Run("Unknown Ordering", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles?ordering=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, envelope{"error": map[string]string{"ordering": "must be one of created_at, views, title with an optional leading -"}}.JSON(), gotBody.JSON())
	})

	t.Run("Limit And Offset", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/articles?limit=1&offset=1", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), gotBody["count"])
	})
}

func TestUpdateArticleHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	otherToken, _, err := createTestUser(app, db, "otheruser", "otheruser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", false)
	assert.NoError(t, err)

	t.Run("Owner Updates Title", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/articles/%d", articleId), token, map[string]any{"title": "Renamed Article"})
		assert.Equal(t, http.StatusOK, status)

		article := gotBody["article"].(map[string]any)
		assert.Equal(t, "Renamed Article", article["title"])
		assert.Equal(t, "renamed-article", article["slug"])
		assert.Equal(t, "This is a test article", article["content"])
	})

	t.Run("Owner Publishes", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/articles/%d", articleId), token, map[string]any{"is_published": true})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, gotBody["article"].(map[string]any)["is_published"])
	})

	t.Run("Echoed Read Only Fields Are Ignored", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/articles/%d", articleId), token, map[string]any{
			"views":  50,
			"slug":   "client-chosen-slug",
			"author": map[string]any{"id": 42},
		})
		assert.Equal(t, http.StatusOK, status)

		article := gotBody["article"].(map[string]any)
		assert.Equal(t, float64(0), article["views"])
		assert.Equal(t, "renamed-article", article["slug"])
	})

	t.Run("Non Owner Is Forbidden", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/articles/%d", articleId), otherToken, map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, status)
		assert.JSONEq(t, envelope{"error": "you do not have permission to modify this resource"}.JSON(), gotBody.JSON())
	})

	t.Run("Missing Article", func(t *testing.T) {
		status, _, gotBody := ts.put(t, "/v1/articles/999999", token, map[string]any{"title": "Renamed Article"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, envelope{"error": "resource not found"}.JSON(), gotBody.JSON())
	})
}

func TestDeleteArticleHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	otherToken, _, err := createTestUser(app, db, "otheruser", "otheruser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
	assert.NoError(t, err)

	t.Run("Non Owner Is Forbidden", func(t *testing.T) {
		status, _, gotBody := ts.delete(t, fmt.Sprintf("/v1/articles/%d", articleId), otherToken)
		assert.Equal(t, http.StatusForbidden, status)
		assert.JSONEq(t, envelope{"error": "you do not have permission to modify this resource"}.JSON(), gotBody.JSON())
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		status, _, gotBody := ts.delete(t, fmt.Sprintf("/v1/articles/%d", articleId), token)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, envelope{"message": "article deleted"}.JSON(), gotBody.JSON())

		status, _, _ = ts.get(t, fmt.Sprintf("/v1/articles/%d", articleId), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

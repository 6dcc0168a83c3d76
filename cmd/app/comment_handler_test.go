package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCommentHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
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
				"content":    "Great article!",
				"article_id": articleId,
			},
			token:      token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Missing Article",
			payload: map[string]any{
				"content":    "Great article!",
				"article_id": 999999,
			},
			token:      token,
			wantStatus: http.StatusNotFound,
			wantBody:   envelope{"error": "resource not found"},
		},
		{
			name: "Empty Content",
			payload: map[string]any{
				"content":    "",
				"article_id": articleId,
			},
			token:      token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"content": "must be provided"}},
		},
		{
			name: "No Authentication Token",
			payload: map[string]any{
				"content":    "Great article!",
				"article_id": articleId,
			},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
			wantBody:   envelope{"error": "invalid or missing authentication token"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, gotBody := ts.post(t, "/v1/comments", tc.payload, tc.token)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.JSONEq(t, tc.wantBody.JSON(), gotBody.JSON())
			}

			if status == http.StatusCreated {
				comment := gotBody["comment"].(map[string]any)
				assert.Equal(t, "Great article!", comment["content"])
				assert.Equal(t, float64(articleId), comment["article_id"])
				assert.Equal(t, "testuser", comment["user"].(map[string]any)["username"])
			}
		})
	}
}

func TestListCommentsHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	_, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = db.Exec("INSERT INTO comments (content, article_id, user_id) VALUES ($1, $2, $3)", fmt.Sprintf("comment %d", i), articleId, *userId)
		assert.NoError(t, err)
	}

	t.Run("List All", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/comments", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), gotBody["count"])
	})

	t.Run("Limit", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/comments?limit=2", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), gotBody["count"])
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		status, _, gotBody := ts.get(t, "/v1/comments?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, envelope{"error": "invalid limit parameter"}.JSON(), gotBody.JSON())
	})
}

func TestUpdateCommentHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	otherToken, _, err := createTestUser(app, db, "otheruser", "otheruser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
	assert.NoError(t, err)

	var commentId int
	err = db.QueryRow("INSERT INTO comments (content, article_id, user_id) VALUES ($1, $2, $3) RETURNING id", "original comment", articleId, *userId).Scan(&commentId)
	assert.NoError(t, err)

	t.Run("Owner Updates", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/comments/%d", commentId), token, map[string]any{"content": "edited comment"})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "edited comment", gotBody["comment"].(map[string]any)["content"])
	})

	t.Run("Non Owner Is Forbidden", func(t *testing.T) {
		status, _, gotBody := ts.put(t, fmt.Sprintf("/v1/comments/%d", commentId), otherToken, map[string]any{"content": "hijacked"})
		assert.Equal(t, http.StatusForbidden, status)
		assert.JSONEq(t, envelope{"error": "you do not have permission to modify this resource"}.JSON(), gotBody.JSON())
	})

	t.Run("Missing Comment", func(t *testing.T) {
		status, _, gotBody := ts.put(t, "/v1/comments/999999", token, map[string]any{"content": "edited comment"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, envelope{"error": "resource not found"}.JSON(), gotBody.JSON())
	})
}

func TestDeleteCommentHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token, userId, err := createTestUser(app, db, "testuser", "testuser@example.com")
	assert.NoError(t, err)

	otherToken, _, err := createTestUser(app, db, "otheruser", "otheruser@example.com")
	assert.NoError(t, err)

	articleId, err := createTestArticle(db, *userId, "Test Article", "test-article", true)
	assert.NoError(t, err)

	var commentId int
	err = db.QueryRow("INSERT INTO comments (content, article_id, user_id) VALUES ($1, $2, $3) RETURNING id", "a comment", articleId, *userId).Scan(&commentId)
	assert.NoError(t, err)

	t.Run("Non Owner Is Forbidden", func(t *testing.T) {
		status, _, gotBody := ts.delete(t, fmt.Sprintf("/v1/comments/%d", commentId), otherToken)
		assert.Equal(t, http.StatusForbidden, status)
		assert.JSONEq(t, envelope{"error": "you do not have permission to modify this resource"}.JSON(), gotBody.JSON())
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		status, _, gotBody := ts.delete(t, fmt.Sprintf("/v1/comments/%d", commentId), token)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, envelope{"message": "comment deleted"}.JSON(), gotBody.JSON())

		status, _, _ = ts.get(t, fmt.Sprintf("/v1/comments/%d", commentId), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

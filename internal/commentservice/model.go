package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrArticleForeignKey = errors.New("article_id does not exist")
	ErrUserForeignKey    = errors.New("user_id does not exist")
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func (m *CommentModel) insert(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (content, article_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, c.Content, c.ArticleID, c.User.ID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_article_id_fkey"):
			return ErrArticleForeignKey
		case common.ForeignKeyError(err, "comments_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *CommentModel) getCommentById(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT c.id, c.content, c.article_id, c.created_at, u.id, u.username, u.email, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1`

	var c Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Content, &c.ArticleID, &c.CreatedAt, &c.User.ID, &c.User.Username, &c.User.Email, &c.User.FirstName, &c.User.LastName)
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

func (m *CommentModel) getComments(ctx context.Context, limit, offset int) ([]Comment, error) {
	query := `
		SELECT c.id, c.content, c.article_id, c.created_at, u.id, u.username, u.email, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Content, &c.ArticleID, &c.CreatedAt, &c.User.ID, &c.User.Username, &c.User.Email, &c.User.FirstName, &c.User.LastName)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *CommentModel) updateComment(ctx context.Context, c *Comment) error {
	query := `
		UPDATE comments
		SET content = $1
		WHERE id = $2 AND user_id = $3`

	res, err := m.db.ExecContext(ctx, query, c.Content, c.ID, c.User.ID)
	if err != nil {
		return err
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

func (m *CommentModel) deleteComment(ctx context.Context, commentId, userId int) error {
	query := `
		DELETE FROM comments
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, commentId, userId)
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

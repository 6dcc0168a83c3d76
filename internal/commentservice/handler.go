package commentservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/inkwell/internal/common"
)

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{m: newCommentModel(db)}
}

type CreateCommentRequest struct {
	Content   string `json:"content"`
	ArticleID int    `json:"article_id"`
	UserID    int    `json:"-"`
}

// CreateComment creates a comment against an existing article. The user is
// always the authenticated requester.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	validateContent(v, req.Content)
	validateInt(v, req.ArticleID, "article_id")
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Comment{
		Content:   req.Content,
		ArticleID: req.ArticleID,
		User:      Commenter{ID: req.UserID},
	}

	err := s.m.insert(ctx, &c)
	if err != nil {
		return nil, err
	}

	return s.m.getCommentById(ctx, c.ID)
}

func (s *CommentService) GetCommentByID(ctx context.Context, id int) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentById(ctx, id)
}

// GetComments returns comments newest first. Default limit is 10 and
// default offset is 0.
func (s *CommentService) GetComments(ctx context.Context, limit, offset *int) ([]Comment, error) {
	if limit == nil || *limit < 1 {
		limit = new(int)
		*limit = 10
	}

	if offset == nil || *offset < 0 {
		offset = new(int)
	}

	return s.m.getComments(ctx, *limit, *offset)
}

// UpdateComment edits a comment owned by userId.
func (s *CommentService) UpdateComment(ctx context.Context, commentId, userId int, content string) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, commentId, "id")
	validateInt(v, userId, "user_id")
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := Comment{
		ID:      commentId,
		Content: content,
		User:    Commenter{ID: userId},
	}

	err := s.m.updateComment(ctx, &c)
	if err != nil {
		return nil, err
	}

	return s.m.getCommentById(ctx, commentId)
}

// DeleteComment deletes a comment owned by userId.
func (s *CommentService) DeleteComment(ctx context.Context, commentId, userId int) error {
	v := common.NewValidator()
	validateInt(v, commentId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteComment(ctx, commentId, userId)
}

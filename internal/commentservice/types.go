package commentservice

import (
	"database/sql"
	"time"
)

type Commenter struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	ArticleID int       `json:"article_id"`
	User      Commenter `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m *CommentModel
}

package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
		c:  c,
	}
}

type RegisterUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// CreateUser creates a new user account and publishes a user.created event
// for the welcome mail consumer.
func (s *UserService) CreateUser(ctx context.Context, req *RegisterUserRequest) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validateName(v, req.FirstName, "first_name")
	validateName(v, req.LastName, "last_name")
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  Password{Plain: req.Password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
	}{
		Email:    u.Email,
		Username: u.Username,
	}

	mailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, mailData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser verifies the credentials and returns the access token and refresh token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	dbToken, err := s.m.getAuthToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if dbToken != nil {
		if dbToken.AccessTokenExpiry.After(time.Now()) && dbToken.RefreshTokenExpiry.After(time.Now()) {
			return dbToken, nil
		}

		tx, err := s.m.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}

		err = s.m.deleteAuthToken(tx, ctx, user.ID)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		authToken, err := s.m.createAuthToken(tx, ctx, user.ID)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		if err := tx.Commit(); err != nil {
			return nil, err
		}

		return authToken, nil
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	authToken, err := s.m.createAuthToken(tx, ctx, user.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return authToken, nil
}

// GetUserByAccessToken resolves a bearer token to its user. Lookups are
// cached briefly so the authenticate middleware does not hit the database
// on every request.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserByAccessToken(hash)); ok {
			if user, ok := cached.(*User); ok {
				return user, nil
			}
		}
	}

	user, err := s.m.getUserByAccessToken(ctx, hash)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserByAccessToken(hash), user, userCacheTime)
	}

	return user, nil
}

func (s *UserService) LogoutUser(ctx context.Context, userId int) error {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = s.m.deleteAuthToken(tx, ctx, userId)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if s.c != nil {
		s.c.Flush()
	}

	return nil
}

// GetProfile returns the user's own profile with derived article and
// comment counts.
func (s *UserService) GetProfile(ctx context.Context, userId int) (*Profile, error) {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getProfile(ctx, userId)
}

type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateProfile partially updates email, first name and last name. The
// username cannot be changed through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userId int, req *UpdateProfileRequest) (*Profile, error) {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if req.Email != nil {
		validateEmail(v, *req.Email)
	}
	if req.FirstName != nil {
		validateName(v, *req.FirstName, "first_name")
	}
	if req.LastName != nil {
		validateName(v, *req.LastName, "last_name")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.updateProfile(ctx, userId, req.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	return s.m.getProfile(ctx, userId)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

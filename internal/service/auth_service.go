package service

import (
	"context"
	"sync"

	"bloglist/internal/models"
	"bloglist/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMessage = "invalid username or password"

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer

	dummyOnce sync.Once
	dummyHash []byte
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login checks the credentials and issues a token. Unknown usernames and wrong
// passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Spend the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), passwordBytes(in.Password))
		return nil, models.NewUnauthorizedError(invalidCredentialsMessage)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError(invalidCredentialsMessage)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{Token: token, Username: user.Username, Name: user.Name}, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bloglist-dummy-password"), bcrypt.DefaultCost)
	})
	return s.dummyHash
}

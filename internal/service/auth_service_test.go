package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/pkg/jwtutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestAuthService(users *mockUserRepo, tokens TokenIssuer) *authService {
	svc := NewAuthService(users, tokens, nil, testLogger).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func TestRegister_Success(t *testing.T) {
	var stored *models.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, u *models.User) error {
			u.ID = 1
			stored = u
			return nil
		},
	}
	svc := newTestAuthService(users, &mockTokens{})

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: " alice ", Email: "alice@example.com", Password: "s3cret!!", Password2: "s3cret!!",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret!!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret!!")))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, u *models.User) error {
			t.Fatal("user must not be created")
			return nil
		},
	}
	svc := newTestAuthService(users, &mockTokens{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "one", Password2: "two",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Password fields didn't match.", verr.Fields["password"])
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockTokens{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "not-an-email"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "password2")
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := &mockUserRepo{
		existsFn: func(ctx context.Context, username string) (bool, error) { return true, nil },
	}
	svc := newTestAuthService(users, &mockTokens{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw", Password2: "pw",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateKeyRace(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, u *models.User) error { return gorm.ErrDuplicatedKey },
	}
	svc := newTestAuthService(users, &mockTokens{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw", Password2: "pw",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	hash := hashed(t, "correct horse")
	users := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			if username != "alice" {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.User{ID: 1, Username: "alice", PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(users, &mockTokens{})

	pair, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "access-alice", pair.Access)
	assert.Equal(t, "refresh-alice", pair.Refresh)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "mallory", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	tokens := &mockTokens{
		validateFn: func(tokenString, expectedType string) (*jwtutil.UserClaims, error) {
			assert.Equal(t, jwtutil.TokenRefresh, expectedType)
			if tokenString != "good" {
				return nil, jwtutil.ErrInvalidToken
			}
			return &jwtutil.UserClaims{UserID: 1, Username: "alice"}, nil
		},
	}
	svc := newTestAuthService(&mockUserRepo{}, tokens)

	access, err := svc.Refresh(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "access-alice", access)

	_, err = svc.Refresh(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "a: first; b: second", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, (&ValidationError{}).orNil())
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Handler(t *testing.T) {
	var got service.RegisterInput
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*models.User, error) {
			got = in
			return &models.User{ID: 1, Username: in.Username}, nil
		},
	}
	body := `{"username":"alice","email":"alice@example.com","password":"s3cret-pass","password2":"s3cret-pass"}`
	c, rec := newContext(http.MethodPost, "/api/register/", strings.NewReader(body), nil)

	require.NoError(t, NewAuthHandler(svc).Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "s3cret-pass", got.Password2)

	var resp dto.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.RegisteredMessage, resp.Message)
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
}

func TestRegister_Handler_Validation(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*models.User, error) {
			return nil, &service.ValidationError{Fields: map[string]string{"password": "Password fields didn't match."}}
		},
	}
	c, _ := newContext(http.MethodPost, "/api/register/", strings.NewReader(`{"username":"alice"}`), nil)

	err := NewAuthHandler(svc).Register(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	resp := he.Message.(dto.ErrorResponse)
	assert.Contains(t, resp.Fields, "password")
}

func TestObtainToken_Handler(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*service.TokenPair, error) {
			if username == "alice" && password == "pw" {
				return &service.TokenPair{Access: "a.b.c", Refresh: "d.e.f"}, nil
			}
			return nil, service.ErrInvalidCredentials
		},
	}

	t.Run("success", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/api/token/", strings.NewReader(`{"username":"alice","password":"pw"}`), nil)

		require.NoError(t, NewAuthHandler(svc).ObtainToken(c))

		var resp dto.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, dto.TokenResponse{Access: "a.b.c", Refresh: "d.e.f"}, resp)
	})

	t.Run("wrong password", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/token/", strings.NewReader(`{"username":"alice","password":"nope"}`), nil)

		err := NewAuthHandler(svc).ObtainToken(c)

		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/token/", strings.NewReader(`{"username":"alice"}`), nil)

		err := NewAuthHandler(svc).ObtainToken(c)

		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		resp := he.Message.(dto.ErrorResponse)
		assert.Equal(t, "This field is required.", resp.Fields["password"])
	})
}

func TestRefreshToken_Handler(t *testing.T) {
	svc := &mockAuthService{
		refreshFn: func(ctx context.Context, refresh string) (string, error) {
			if refresh == "good" {
				return "new-access", nil
			}
			return "", service.ErrInvalidToken
		},
	}

	c, rec := newContext(http.MethodPost, "/api/token/refresh/", strings.NewReader(`{"refresh":"good"}`), nil)
	require.NoError(t, NewAuthHandler(svc).RefreshToken(c))
	assert.JSONEq(t, `{"access":"new-access"}`, rec.Body.String())

	c, _ = newContext(http.MethodPost, "/api/token/refresh/", strings.NewReader(`{"refresh":"bad"}`), nil)
	err := NewAuthHandler(svc).RefreshToken(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/register/", h.Register)
	api.POST("/token/", h.ObtainToken)
	api.POST("/token/refresh/", h.RefreshToken)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	}); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: service.RegisteredMessage})
}

func (h *AuthHandler) ObtainToken(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	access, err := h.svc.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{Access: access})
}

package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type AuthHandler struct {
	userService UserServiceInterface
	jwtService  *services.JWTService
}

func NewAuthHandler(userService UserServiceInterface, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		c.BadRequest("email, name and password are required")
		return
	}

	user, err := h.userService.SignUp(context.Background(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtService.Generate(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	user, err := h.userService.Authenticate(context.Background(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtService.Generate(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

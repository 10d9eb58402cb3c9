package handlers

import (
	"net/http"

	"tablebook/internal/domain"
	"tablebook/internal/http/middleware"
	"tablebook/internal/services"

	"github.com/gin-gonic/gin"
)

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		JWTSecret: []byte(env.JWTSecret),
		RequestID: middleware.GetRequestID(c),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := userService(c).Login(req.Email, req.Password)
	if err != nil {
		// Bad or missing credentials all answer 401, without hinting
		// whether the account exists.
		if domain.IsValidation(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register (admin)
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := userService(c).Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered",
		"user":    user,
	})
}

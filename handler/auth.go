package handler

import (
	"errors"
	"net/http"
	"time"

	"topthought/domain"
	"topthought/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tokenLifetime = 7 * 24 * time.Hour

type loginResponse struct {
	Token string           `json:"token"`
	User  domain.AdminUser `json:"user"`
}

// Login verifies the admin credentials and issues a bearer token carrying the
// account id and username. Unknown username and wrong password produce the
// same response.
func (h *Handler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}
	if errs := creds.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: errs})
	}

	user, err := h.Store.Authenticate(c.Request().Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
		}
		c.Logger().Errorf("login: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		c.Logger().Errorf("signing token: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, loginResponse{Token: signed, User: user})
}

package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const ctxUserID = "user_id"

// JWTAuth validates an HS256 bearer token and stores its numeric subject in
// the request context under "user_id".
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return unauthorized(c, "invalid token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}

			userID, ok := subjectID(claims["sub"])
			if !ok {
				return unauthorized(c, "invalid subject")
			}

			c.Set(ctxUserID, userID)
			return next(c)
		}
	}
}

// subjectID accepts both string and numeric sub claims.
func subjectID(sub interface{}) (int64, bool) {
	switch v := sub.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	case float64:
		id := int64(v)
		return id, float64(id) == v && id > 0
	default:
		return 0, false
	}
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Status:    http.StatusUnauthorized,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}

// resolveUser returns the acting user. With a token in context the token
// wins and a different supplied id is rejected.
func resolveUser(c echo.Context, supplied int64) (int64, error) {
	v, ok := c.Get(ctxUserID).(int64)
	if !ok {
		return supplied, nil
	}
	if supplied != 0 && supplied != v {
		return 0, errIdentityMismatch
	}
	return v, nil
}

package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clusterview-dev/clusterview/internal/model"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
)

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ok",
		"data":    data,
	})
}

func respondPage(c *gin.Context, data any, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "ok",
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// pageParams reads page/page_size from the query, clamping nonsense values
// to the defaults.
func pageParams(c *gin.Context, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = defaultSize
	}
	return page, size
}

// pageBounds converts a page selection into slice bounds over total items.
func pageBounds(total, page, size int) (start, end int) {
	start = (page - 1) * size
	if start > total {
		start = total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.Response{
		Success: false,
		Message: message,
	})
}

// authMiddleware validates the bearer token and stores the account on the
// request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := s.validateToken(token)
		if err != nil {
			s.log.Debug().Err(err).Msg("rejected token")
			respondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		var account Account
		if err := s.db.Where("id = ?", claims.UserID).First(&account).Error; err != nil {
			respondError(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}
		if account.Status != "ACTIVE" {
			respondError(c, http.StatusForbidden, "account disabled")
			c.Abort()
			return
		}

		c.Set("account", &account)
		c.Next()
	}
}

// privilegeMiddleware rejects requests from accounts lacking the named
// privilege.
func (s *Server) privilegeMiddleware(privilege string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "unauthenticated request")
			c.Abort()
			return
		}
		if !account.HasPrivilege(privilege) {
			respondError(c, http.StatusForbidden, "insufficient privilege for this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentAccount(c *gin.Context) (*Account, bool) {
	value, exists := c.Get("account")
	if !exists {
		return nil, false
	}
	account, ok := value.(*Account)
	return account, ok
}

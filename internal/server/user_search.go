package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	usersearchdomain "github.com/smallbiznis/teamhub/internal/usersearch/domain"
)

func (s *Server) SearchUsers(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		limit = parsed
	}

	result, err := s.userSearchSvc.Search(c.Request.Context(), user.ID, usersearchdomain.SearchRequest{
		Query: c.Query("q"),
		Role:  c.Query("role"),
		Limit: limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

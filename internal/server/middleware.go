package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
)

const contextUserKey = "current_user"

// AuthRequired authenticates the session cookie and stores the current user
// on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, _, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

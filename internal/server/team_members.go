package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
)

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) ListTeamMembers(c *gin.Context) {
	members, err := s.teamSvc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) AddTeamMember(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.teamSvc.AddMember(c.Request.Context(), user.ID, teamdomain.AddMemberRequest{
		TeamID: c.Param("id"),
		UserID: req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body := gin.H{
		"membership": result.Membership,
		"user":       result.User,
	}
	if result.RoleChanged {
		body["message"] = "user has been promoted to team member"
	}
	c.JSON(http.StatusCreated, body)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invitationdomain "github.com/smallbiznis/teamhub/internal/invitation/domain"
)

type createInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) CreateTeamInvitation(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.invitationSvc.Invite(c.Request.Context(), user.ID, invitationdomain.InviteRequest{
		TeamID: c.Param("id"),
		Email:  req.Email,
		Role:   req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": invitationView(result.Invitation, result.TeamName, result.InviterName),
		"token":      result.Invitation.Token,
	})
}

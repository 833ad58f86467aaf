package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	invitationdomain "github.com/smallbiznis/teamhub/internal/invitation/domain"
)

type respondInvitationRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"`
}

// invitationView is the invitation shape exposed over HTTP. The token is
// never echoed back here; it travels only in the create response and the
// invite link itself.
func invitationView(inv *invitationdomain.Invitation, teamName, inviterName string) gin.H {
	return gin.H{
		"id":            inv.ID,
		"team_id":       inv.TeamID,
		"team_name":     teamName,
		"invited_email": inv.InvitedEmail,
		"invited_by":    inviterName,
		"role":          inv.Role,
		"status":        inv.Status,
		"expires_at":    inv.ExpiresAt,
		"created_at":    inv.CreatedAt,
	}
}

func (s *Server) GetInvitation(c *gin.Context) {
	details, err := s.invitationSvc.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view := invitationView(&details.Invitation, details.TeamName, details.InviterName)
	view["expired"] = details.Invitation.Expired(time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"invitation": view})
}

func (s *Server) RespondInvitation(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req respondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.invitationSvc.Respond(c.Request.Context(), user.ID, invitationdomain.RespondRequest{
		Token:  req.Token,
		Action: req.Action,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body := gin.H{
		"action":    result.Action,
		"team_name": result.TeamName,
	}
	if result.Action == invitationdomain.ActionAccept {
		body["membership"] = result.Membership
		body["user"] = result.User
		if result.UserPromoted {
			body["message"] = "you have joined " + result.TeamName + " and been promoted to " + result.User.Role
		} else {
			body["message"] = "you have joined " + result.TeamName
		}
	} else {
		body["message"] = "invitation declined"
	}
	c.JSON(http.StatusOK, body)
}

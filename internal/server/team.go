package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
)

type teamRequest struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) ListTeams(c *gin.Context) {
	teams, err := s.teamSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) CreateTeam(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.teamSvc.Create(c.Request.Context(), user.ID, teamdomain.CreateTeamRequest{
		Name:     req.Name,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body := gin.H{
		"team":       result.Team,
		"membership": result.Membership,
	}
	if result.UserPromoted {
		body["message"] = "you have been promoted to team lead"
	}
	c.JSON(http.StatusCreated, body)
}

func (s *Server) GetTeam(c *gin.Context) {
	team, err := s.teamSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (s *Server) UpdateTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	team, err := s.teamSvc.Update(c.Request.Context(), c.Param("id"), teamdomain.UpdateTeamRequest{
		Name:     req.Name,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (s *Server) DeleteTeam(c *gin.Context) {
	if err := s.teamSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/middleware"
	"github.com/giftcircle/giftcircle/internal/models"
)

func (s *Server) createProposal(c *gin.Context) {
	var proposal models.Proposal
	if err := c.ShouldBindJSON(&proposal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.Proposals.Create(c.Request.Context(), middleware.GetUserID(c), &proposal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listProposals(c *gin.Context) {
	proposals, err := s.Proposals.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

func (s *Server) getProposal(c *gin.Context) {
	proposal, err := s.Proposals.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

type proposalUpdateRequest struct {
	Participants []models.Participant `json:"participants" binding:"required"`
}

func (s *Server) updateProposal(c *gin.Context) {
	var req proposalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.Proposals.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Participants)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteProposal(c *gin.Context) {
	if err := s.Proposals.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) acceptProposal(c *gin.Context) {
	s.respond(c, models.ParticipantAccepted)
}

func (s *Server) declineProposal(c *gin.Context) {
	s.respond(c, models.ParticipantRejected)
}

func (s *Server) respond(c *gin.Context, state models.ParticipantState) {
	proposal, err := s.Proposals.Respond(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (s *Server) cancelProposal(c *gin.Context) {
	proposal, err := s.Proposals.Cancel(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (s *Server) settleProposal(c *gin.Context) {
	result, err := s.Money.SettleProposal(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

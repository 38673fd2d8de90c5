package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/middleware"
	"github.com/giftcircle/giftcircle/internal/models"
)

func (s *Server) createMoneyEntry(c *gin.Context) {
	var entry models.MoneyEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.Money.Create(c.Request.Context(), middleware.GetUserID(c), &entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listMoneyEntries(c *gin.Context) {
	entries, err := s.Money.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type moneyUpdateRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Note   string  `json:"note"`
	Paid   bool    `json:"paid"`
}

func (s *Server) updateMoneyEntry(c *gin.Context) {
	var req moneyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.Money.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Amount, req.Note, req.Paid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteMoneyEntry(c *gin.Context) {
	if err := s.Money.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/middleware"
)

type askRequest struct {
	AskedOfID string `json:"askedOfId" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

func (s *Server) askQuestion(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := s.Questions.Ask(c.Request.Context(), middleware.GetUserID(c), req.AskedOfID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (s *Server) listQuestions(c *gin.Context) {
	questions, err := s.Questions.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

func (s *Server) answerQuestion(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := s.Questions.Answer(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

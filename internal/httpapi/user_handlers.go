package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/middleware"
)

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": s.Directory.List()})
}

func (s *Server) listUserItems(c *gin.Context) {
	items, err := s.Items.ListFor(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listContributions(c *gin.Context) {
	groups, err := s.Contributions.Groups(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/middleware"
	"github.com/giftcircle/giftcircle/internal/models"
)

func (s *Server) createItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.Items.Create(c.Request.Context(), middleware.GetUserID(c), &item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listItems(c *gin.Context) {
	items, err := s.Items.ListOwn(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) getItem(c *gin.Context) {
	item, err := s.Items.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) updateItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.Items.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteItem(c *gin.Context) {
	if err := s.Items.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) setIntent(c *gin.Context) {
	var intent models.Contributor
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.Items.SetIntent(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), intent); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearIntent(c *gin.Context) {
	if err := s.Items.ClearIntent(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

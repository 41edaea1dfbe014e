package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
)

func (s *Server) CreateZone(c *gin.Context) {
	var req zonedomain.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.zoneSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListZones(c *gin.Context) {
	resp, err := s.zoneSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetZoneByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.zoneSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateZone(c *gin.Context) {
	var req zonedomain.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.zoneSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteZone(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.zoneSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

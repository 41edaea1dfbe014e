package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	meteringdomain "github.com/smallbiznis/geotoll/internal/metering/domain"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
)

func (s *Server) CreateRule(c *gin.Context) {
	var req ruledomain.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ruleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRules(c *gin.Context) {
	resp, err := s.ruleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRuleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.ruleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRule(c *gin.Context) {
	var req ruledomain.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.ruleSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.ruleSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) EnableRule(c *gin.Context) {
	s.setRuleEnabled(c, true)
}

func (s *Server) DisableRule(c *gin.Context) {
	s.setRuleEnabled(c, false)
}

func (s *Server) setRuleEnabled(c *gin.Context, enabled bool) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.ruleSvc.SetEnabled(c.Request.Context(), id, enabled)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// LookupRuleByLocation answers "which rule would apply here, now"
// without touching any user state.
func (s *Server) LookupRuleByLocation(c *gin.Context) {
	var query meteringdomain.LookupRuleRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rule, err := s.meteringSvc.LookupRule(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if rule == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rule})
}

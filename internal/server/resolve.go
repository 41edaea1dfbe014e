package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	meteringdomain "github.com/smallbiznis/geotoll/internal/metering/domain"
)

func (s *Server) Resolve(c *gin.Context) {
	var req meteringdomain.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meteringSvc.Resolve(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

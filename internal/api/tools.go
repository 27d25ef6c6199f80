package api

import (
	"fmt"
	"net/http"

	"github.com/booksmcp/booksmcp/pkg/types"
	"github.com/booksmcp/booksmcp/pkg/version"
	"github.com/gin-gonic/gin"
)

func (s *Server) rootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, &types.ServerInfo{
			Name:        AppTitle,
			Version:     version.GetVersion(),
			Description: AppDescription,
			DocsURL:     "/tools",
		})
	}
}

func (s *Server) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, &types.HealthStatus{
			Status:         "healthy",
			AvailableTools: s.dispatcher.Registry().Len(),
		})
	}
}

func (s *Server) listToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, &types.ToolsListResponse{Tools: s.dispatcher.Registry().Definitions()})
	}
}

func (s *Server) getToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		for _, def := range s.dispatcher.Registry().Definitions() {
			if def.Name == name {
				c.JSON(http.StatusOK, def)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown tool: %s", name)})
	}
}

// callToolsHandler executes a batch of tool calls.
// Only a structurally invalid body fails the request; every call inside a valid batch gets
// its own result, successful or not.
func (s *Server) callToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input types.ToolCallsRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.ToolCalls == nil {
			input.ToolCalls = []types.ToolCallRequest{}
		}
		results := s.dispatcher.Dispatch(c.Request.Context(), input.ToolCalls)
		c.JSON(http.StatusOK, &types.ToolCallsResponse{ToolCallResults: results})
	}
}

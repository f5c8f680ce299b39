package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/platform/analytics"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls
func PosthogMiddleware(client *analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Enabled() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		accountID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/groups/:group_id/expenses" -> "api_v1_groups_:group_id_expenses"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if groupID := c.Param("group_id"); groupID != "" {
			props["group_id"] = groupID
		}

		client.Enqueue(accountID, eventName, props)
	}
}

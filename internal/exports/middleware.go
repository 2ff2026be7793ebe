package exports

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by APIKeyAuthMiddleware for the export handlers.
const (
	ctxExportOrgID = "exportOrgID"
	ctxExportKeyID = "exportKeyID"
)

// APIKeyAuthMiddleware guards the external pull endpoints. The caller sends
// the plaintext key in X-Export-API-Key; only its sha256 hash is compared
// against the store.
func APIKeyAuthMiddleware(repo *Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		plaintext := c.GetHeader("X-Export-API-Key")
		if plaintext == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing export API key"})
			return
		}

		key, err := repo.GetAPIKeyByHash(c.Request.Context(), HashKey(plaintext))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid export API key"})
			return
		}

		c.Set(ctxExportOrgID, key.OrganizationID)
		c.Set(ctxExportKeyID, key.ID)
		c.Next()
	}
}

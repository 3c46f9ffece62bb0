package middleware

import (
	"regexp"
	"strings"
	"time"

	"client_tracker_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// deploymentOrigins are the hosting platforms the frontend is deployed to.
var deploymentOrigins = []*regexp.Regexp{
	regexp.MustCompile(`\.netlify\.app$`),
	regexp.MustCompile(`\.vercel\.app$`),
	regexp.MustCompile(`\.railway\.app$`),
}

// AllowedOrigins builds the exact-match origin list: the configured frontend,
// the local dev servers and any extra configured origins. Entries without an
// http(s) scheme are dropped.
func AllowedOrigins(frontendURL string, extra []string) []string {
	candidates := append([]string{frontendURL, "http://localhost:3000", "http://localhost:5173"}, extra...)
	seen := make(map[string]bool)
	var origins []string
	for _, o := range candidates {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			if o != "" {
				utils.LogWarn("Ignoring invalid CORS origin", map[string]interface{}{"origin": o})
			}
			continue
		}
		if !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDeploymentOrigin reports whether origin belongs to a known hosting platform.
func IsDeploymentOrigin(origin string) bool {
	for _, re := range deploymentOrigins {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// CORS returns the cross-origin policy middleware.
func CORS(frontendURL string, extra []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = AllowedOrigins(frontendURL, extra)
	config.AllowOriginFunc = IsDeploymentOrigin
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}

package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode picks the gin mode for the configured environment. Anything other
// than production or test keeps gin's debug default.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}

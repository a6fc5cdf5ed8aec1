package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode maps APP_ENV onto a gin mode. Unknown values keep debug mode.
func SetGinMode(env string) {
	switch env {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}

package middleware

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/goleak"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

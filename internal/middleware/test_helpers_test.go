package middleware

import (
	"testing"

	"simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupTestService(t *testing.T, extraEnv ...string) *service.AppService {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig(t, extraEnv...)
	return service.NewAppService()
}

package contractimport

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/middleware"
)

// Completed imports are replayable for a day; duplicates inside that window
// get the original result instead of a second contract.
const idempotencyTTL = 24 * time.Hour

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.UserIdentity())
	contracts.Use(middleware.ContextLogger(logger))
	{
		contracts.POST("/import",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Idempotency(rdb, idempotencyTTL),
			handler.Import,
		)
	}
}

package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/luxor-app/luxor-auth/internal/interface/middleware"
)

// DebugModule exposes expvar at /debug/vars, rate-limited per IP when a
// Redis client is available.
type DebugModule struct {
	rdb redis.Scripter
}

func NewDebugModule(rdb redis.Scripter) *DebugModule { return &DebugModule{rdb: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

package modules

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luxor-app/luxor-auth/pkg/response"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthModule serves GET /healthz. Each named check must pass within Timeout.
type HealthModule struct {
	Checks  map[string]Check
	Timeout time.Duration
}

func NewHealthModule(checks map[string]Check) *HealthModule {
	return &HealthModule{Checks: checks, Timeout: 2 * time.Second}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.handle)
}

func (m *HealthModule) handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), m.Timeout)
	defer cancel()

	names := make([]string, 0, len(m.Checks))
	for name := range m.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{}
	var failed []string
	for _, name := range names {
		if err := m.Checks[name](ctx); err != nil {
			status[name] = "down"
			failed = append(failed, name+": "+err.Error())
			continue
		}
		status[name] = "up"
	}

	rid := c.GetString("request_id")
	if len(failed) > 0 {
		res := response.Error(rid, http.StatusServiceUnavailable, "unhealthy", failed...)
		res.Metadata = status
		c.JSON(http.StatusServiceUnavailable, res)
		return
	}
	c.JSON(http.StatusOK, response.Success(rid, http.StatusOK, "ok", status))
}

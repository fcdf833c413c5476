package deps

import (
	"time"

	"minimarks/internal/logger"
	"minimarks/internal/session"
	"minimarks/internal/store"
	"minimarks/internal/web"
)

type Deps struct {
	Logger    logger.Logger
	Store     store.Store
	Sessions  session.Store
	Renderer  *web.Renderer
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	PerPage    int           // feed page size
	SessionTTL time.Duration // cookie / session lifetime

	AllowedHosts []string // Host headers allowed to access the server
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	LoginBurst        int // rate limit bucket size for credential endpoints
	LoginRefillPerMin int // rate limit refill for credential endpoints
}

// Now returns the current time via TimeNow, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

package nav

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// Invalidator clears the session holding token and reports whether it did.
type Invalidator interface {
	InvalidateToken(ctx context.Context, token string) bool
}

// Coordinator is the single place a 401 from the API becomes a forced logout
// and a trip to the login page.
type Coordinator struct {
	Sessions  Invalidator
	Navigator Navigator
	Logger    *slog.Logger

	// Expired, if set, is incremented on every forced logout.
	Expired interface{ Inc() }
}

// Attach subscribes the coordinator to client's auth-expired events.
func (c *Coordinator) Attach(client *recruitsdk.Client) (detach func()) {
	return client.OnAuthExpired(c.HandleAuthExpired)
}

// HandleAuthExpired navigates to login only when the rejected token was the
// live session's, so concurrent 401s produce one redirect.
func (c *Coordinator) HandleAuthExpired(ev recruitsdk.AuthExpiredEvent) {
	if !c.Sessions.InvalidateToken(context.Background(), ev.Token) {
		c.logger().Debug("ignoring stale 401", "method", ev.Method, "url", ev.URL)
		return
	}
	c.logger().Warn("session expired, redirecting to login", "method", ev.Method, "url", ev.URL)
	if c.Expired != nil {
		c.Expired.Inc()
	}
	c.Navigator.Navigate(PathLogin)
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

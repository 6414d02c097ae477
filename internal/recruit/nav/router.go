package nav

import (
	"log/slog"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"
)

// maxHops bounds redirect chains. The longest legitimate one is
// section -> /dashboard -> landing page.
const maxHops = 4

// Sessions is what the router needs from the session owner.
type Sessions interface {
	SessionView
	Subscribe(fn func(*domain.Session)) (unsubscribe func())
}

// Router resolves a requested path through the section guards and the
// dashboard dispatcher, and records where the user ends up.
type Router struct {
	Sessions Sessions
	History  *History
	Logger   *slog.Logger
}

func NewRouter(sessions Sessions, history *History, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{Sessions: sessions, History: history, Logger: logger}
}

// Enter navigates to path. If a guard turns the user away the decision is
// Redirecting with the final destination as Target; the history then shows
// the destination, not path.
func (r *Router) Enter(path string) Decision {
	redirected := false
	for range maxHops {
		if path == PathDashboard {
			path = DashboardPath(r.Sessions.CurrentUser())
			redirected = true
		}

		sec, ok := SectionFor(path)
		if !ok {
			return r.land(path, redirected)
		}

		d := sec.Guard.Evaluate(r.Sessions)
		switch d.Kind {
		case Checking:
			r.History.Navigate(path)
			return d
		case Allowed:
			return r.land(path, redirected)
		default:
			r.Logger.Debug("guard redirect", "from", path, "to", d.Target, "required_role", sec.Guard.Role)
			path = d.Target
			redirected = true
		}
	}

	r.Logger.Error("redirect loop", "last", path)
	return r.land(PathLogin, true)
}

func (r *Router) land(path string, redirected bool) Decision {
	r.History.Navigate(path)
	if redirected {
		return Decision{Kind: Redirecting, Target: path}
	}
	return Decision{Kind: Allowed}
}

// Watch re-checks the current location whenever the session changes, so a
// logout on a protected page redirects at once.
func (r *Router) Watch() (stop func()) {
	return r.Sessions.Subscribe(func(*domain.Session) {
		r.Enter(r.History.Location())
	})
}

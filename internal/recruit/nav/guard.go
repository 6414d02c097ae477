package nav

import "github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"

type DecisionKind int

const (
	// Checking means the session is not resolved yet; show a placeholder,
	// never content.
	Checking DecisionKind = iota
	Allowed
	Redirecting
)

func (k DecisionKind) String() string {
	switch k {
	case Allowed:
		return "allowed"
	case Redirecting:
		return "redirecting"
	default:
		return "checking"
	}
}

// Decision is a guard's verdict. Target is set when Kind is Redirecting.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// SessionView is the read side of the session a guard needs.
type SessionView interface {
	CurrentUser() *domain.Session
	Resolved() bool
}

// Guard admits only sessions holding Role.
type Guard struct {
	Role domain.Role
}

// Evaluate sends everyone else to the generic dashboard, which dispatches
// them on by role (or to login).
func (g Guard) Evaluate(sv SessionView) Decision {
	if !sv.Resolved() {
		return Decision{Kind: Checking}
	}
	if cur := sv.CurrentUser(); cur != nil && cur.Role == g.Role {
		return Decision{Kind: Allowed}
	}
	return Decision{Kind: Redirecting, Target: PathDashboard}
}

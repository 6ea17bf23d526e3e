package extension

// Filter selects records on two independent axes: install status and
// origin. A record is visible only when both axes admit it, so the zero
// Filter admits nothing.
type Filter struct {
	Installed   bool
	Uninstalled bool
	Core        bool
	NonCore     bool
}

// Allows reports whether r passes the filter.
func (f Filter) Allows(r Record) bool {
	return f.allowsStatus(r.Installed) && f.allowsOrigin(r.IsCore())
}

func (f Filter) allowsStatus(installed bool) bool {
	if installed {
		return f.Installed
	}
	return f.Uninstalled
}

func (f Filter) allowsOrigin(core bool) bool {
	if core {
		return f.Core
	}
	return f.NonCore
}

// IsZero reports whether no axis has been opted into.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

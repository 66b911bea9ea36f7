package domain

// ActionKind describes one executor key: which external script handles it
// and whether the approval gate applies. The RequiresApproval flag is the
// explicit per-kind policy; nothing in the system infers it from agent
// names.
type ActionKind struct {
	Name             string
	Script           string // external automation script invoked on dispatch
	RequiresApproval bool
}

// KindSet is the closed registry of recognized kinds.
type KindSet map[string]ActionKind

// DefaultKinds mirrors the shipped automation scripts. The hourly
// promotional comment runs pre-approved; daily posts always pass through
// the approval gate.
func DefaultKinds() KindSet {
	return KindSet{
		"post": {
			Name:             "post",
			Script:           "linkedin_post.js",
			RequiresApproval: true,
		},
		"comment": {
			Name:             "comment",
			Script:           "linkedin_comment.js",
			RequiresApproval: false,
		},
	}
}

// kindOrder fixes iteration so kind selection is deterministic.
var kindOrder = [...]string{"post", "comment"}

// Lookup resolves a kind. A nil or missing entry is reported with
// UnsupportedKindError so callers never dispatch on an unrecognized key.
func (s KindSet) Lookup(name string) (ActionKind, error) {
	if s == nil {
		return ActionKind{}, &UnsupportedKindError{Kind: name}
	}
	k, ok := s[name]
	if !ok {
		return ActionKind{}, &UnsupportedKindError{Kind: name}
	}
	return k, nil
}

// GatedFor selects the approval-gated kind for an agent's drafting run.
// A capability match picks the kind; with no match the first gated kind
// still applies. Capabilities select which kind is drafted, they never
// gate whether a draft happens. Returns false only when the set carries
// no gated kind at all.
func (s KindSet) GatedFor(a *Agent) (ActionKind, bool) {
	var fallback ActionKind
	var found bool
	for _, name := range kindOrder {
		k, ok := s[name]
		if !ok || !k.RequiresApproval {
			continue
		}
		if a.HasCapability(name) {
			return k, true
		}
		if !found {
			fallback, found = k, true
		}
	}
	return fallback, found
}

// FirstPreApproved returns the first kind that is exempt from the approval
// gate and matches one of the agent's capabilities. Unlike drafting, a
// direct dispatch does require the capability: nothing runs unattended
// unless the agent declares it.
func (s KindSet) FirstPreApproved(a *Agent) (ActionKind, bool) {
	for _, name := range kindOrder {
		k, ok := s[name]
		if !ok || k.RequiresApproval {
			continue
		}
		if a.HasCapability(name) {
			return k, true
		}
	}
	return ActionKind{}, false
}

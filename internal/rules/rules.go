// Package rules evaluates the allow/disallow rule lists that version
// manifests attach to libraries and templated arguments.
package rules

// OS is the platform predicate of a rule. Only Name participates in
// evaluation; Version and Arch are parsed so documents round-trip but are not
// refined against the host.
type OS struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// Rule is a single allow/disallow entry. A rule carrying a feature predicate
// (demo mode, custom resolution, ...) is never matched: the feature dimension
// is unsupported and such rules must stay inert.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// Evaluate decides whether a rule list allows the given platform.
//
// An empty or absent list allows everything. Otherwise rules are scanned in
// order with a running allow flag: a matching "allow" rule raises it, and a
// matching "disallow" rule vetoes the whole list immediately, regardless of
// any allow seen before or after. A rule with no OS predicate matches every
// platform; one with an OS predicate matches on exact name only.
func Evaluate(rs []Rule, osName string) bool {
	if len(rs) == 0 {
		return true
	}

	allow := false
	for _, r := range rs {
		if r.Features != nil {
			continue
		}
		if r.OS != nil && r.OS.Name != osName {
			continue
		}
		switch r.Action {
		case "allow":
			allow = true
		case "disallow":
			return false
		}
	}
	return allow
}

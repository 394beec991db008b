// FILE: logmerge/src/internal/decorate/decorate.go
package decorate

import (
	"fmt"
	"regexp"

	"logmerge/src/internal/config"
)

type rule struct {
	re     *regexp.Regexp
	marker string
}

// Decorator relabels sources for display. It is immutable after creation and
// safe for concurrent use.
type Decorator struct {
	rules []rule
}

// New compiles the rules in order; the first matching rule wins
func New(cfgs []config.DecorationConfig) (*Decorator, error) {
	d := &Decorator{rules: make([]rule, 0, len(cfgs))}
	for i, c := range cfgs {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("decoration[%d] '%s': %w", i, c.Pattern, err)
		}
		d.rules = append(d.rules, rule{re: re, marker: c.Marker})
	}
	return d, nil
}

// Decorate returns "<marker> <group> <marker>" for the first rule matching at
// the start of label, where group is the rule's first capture group (the
// whole match if it has none). Unmatched labels are returned unchanged.
func (d *Decorator) Decorate(label string) string {
	if d == nil {
		return label
	}
	for _, r := range d.rules {
		loc := r.re.FindStringSubmatchIndex(label)
		if loc == nil || loc[0] != 0 {
			continue
		}
		group := label[loc[0]:loc[1]]
		if len(loc) >= 4 && loc[2] >= 0 {
			group = label[loc[2]:loc[3]]
		}
		return fmt.Sprintf("%s %s %s", r.marker, group, r.marker)
	}
	return label
}

// Len returns the number of rules
func (d *Decorator) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rules)
}

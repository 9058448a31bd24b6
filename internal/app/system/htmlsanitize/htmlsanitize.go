// Package htmlsanitize strips dangerous markup from user-supplied rich
// text (campaign and activity descriptions) before it is stored.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// ugcPolicy builds the sanitization policy once. It is bluemonday's UGC
// policy plus table elements, which organizers use in descriptions.
func ugcPolicy() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		policy = p
	})
	return policy
}

// Sanitize returns s with all disallowed HTML removed.
func Sanitize(s string) string {
	return ugcPolicy().Sanitize(s)
}

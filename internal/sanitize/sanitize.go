// Package sanitize strips HTML from backend-supplied display strings before
// they are rendered into fragments. Uses bluemonday so a compromised or
// misbehaving backend cannot inject markup through reservation names.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy. Initialized once via sync.Once
// for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// Strict: reservation names and panel text are plain text, never markup.
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML from a backend-supplied string, leaving plain text
// suitable for event titles and panel content.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}

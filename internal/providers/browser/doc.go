// Package browser backs the desktop's demo browser. Navigation is
// disabled: every request renders the same notice, and requested URLs
// are only recorded in the session history.
package browser

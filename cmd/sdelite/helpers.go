package main

import (
	"net/url"
)

// redact hides the password of a connection URL. Paths pass through.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.User == nil {
		return target
	}
	return u.Redacted()
}

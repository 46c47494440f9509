package http

import (
	"fmt"
	"net/url"
)

const maxURLLength = 8192

// validatePageURL accepts an empty URL or an absolute http(s) one.
func validatePageURL(raw string) error {
	if raw == "" {
		return nil
	}
	if len(raw) > maxURLLength {
		return fmt.Errorf("url exceeds maximum length of %d", maxURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q: want an absolute http or https url", raw)
	}
	return nil
}

package handler

import "github.com/labstack/echo/v4"

// currentUser extracts the caller's user ID set by the JWT
// middleware. JWT numeric claims decode as float64.
func currentUser(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case int64:
		return uint64(v), true
	}
	return 0, false
}

// currentRole extracts the caller's role claim; empty when absent, in
// which case ownership checks treat the caller as a plain guest.
func currentRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

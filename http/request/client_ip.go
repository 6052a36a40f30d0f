package request

import (
	"net"
	"net/http"
	"strings"
)

// FindClientIP returns the client IP, preferring proxy headers over the
// transport address.
func FindClientIP(r *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// The first address is the originating client
		address := strings.TrimSpace(strings.Split(value, ",")[0])
		if net.ParseIP(address) != nil {
			return address
		}
	}

	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return remoteIP
}

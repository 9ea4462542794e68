package api

import (
	"fmt"
	"strings"
)

// networkDiagnostic is the operator-facing text attached to transport
// failures. It names the attempted URL and what usually causes the failure
// in each deployment mode.
func networkDiagnostic(url string, ep Endpoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "network connection failed: %s\n\n", url)

	if ep.Mode == ModeProxy {
		b.WriteString("proxy mode: requests go through the reverse proxy")
		if ep.BaseURL != "" {
			fmt.Fprintf(&b, " at %s", ep.BaseURL)
		}
		b.WriteString(", which must forward /api requests to the backend.\n\n")
		b.WriteString("possible causes:\n")
		b.WriteString("1. the proxy was not restarted after its configuration changed\n")
		b.WriteString("2. the backend server is not responding\n")
		b.WriteString("3. the proxy rewrite rules are wrong\n\n")
		b.WriteString("what to try:\n")
		b.WriteString("1. restart the proxy\n")
		b.WriteString("2. check the proxy log for the forwarded request\n")
		b.WriteString("3. rerun with --debug to dump the request")
		return b.String()
	}

	b.WriteString("direct mode: requests go straight to the configured API address.\n\n")
	b.WriteString("possible causes:\n")
	b.WriteString("1. CORS policy: the backend must allow this origin\n")
	b.WriteString("2. the backend server is not responding\n")
	b.WriteString("3. tunnel browser warning: the interstitial page has not been acknowledged yet\n")
	b.WriteString("4. network connectivity problem\n\n")
	b.WriteString("what to try:\n")
	fmt.Fprintf(&b, "1. open %s in a browser\n", ep.BaseURL)
	b.WriteString("2. click \"Visit Site\" on the tunnel warning page\n")
	b.WriteString("3. retry the request")
	return b.String()
}

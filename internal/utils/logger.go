package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized event line tagged with the marketplace
// module (auth, sellers, orders, ...) that produced it. Avoid logging
// sensitive payload; message should be summarized. Background work without
// a request logs "-" for request_id.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

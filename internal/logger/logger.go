// README: Standardised log lines with module/action/request_id, shared by services and middleware.
package logger

import (
	"log"
	"strings"
)

// Event prints one summarised line; payloads stay out of logs.
func Event(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}

// Warn is Event with an error attached. Used for best-effort paths that recover locally.
func Warn(requestID, module, action, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	log.Printf("[%s] level=WARN action=%s request_id=%s msg=%s err=%q", strings.ToUpper(module), action, strings.TrimSpace(requestID), message, errMsg)
}

package frigate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// RetainError reports a retain request the backend accepted at the
// transport level but explicitly rejected, keeping the original request
// and response for diagnostics.
type RetainError struct {
	Instance string
	EventID  string
	Retain   bool
	Message  string
}

func (e *RetainError) Error() string {
	return fmt.Sprintf("frigate[%s] retain event %s (retain=%v) failed: %s", e.Instance, e.EventID, e.Retain, e.Message)
}

type retainResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Retain marks or unmarks an event as retained (favorite). A response
// with success=false becomes a *RetainError.
func (e *Engine) Retain(ctx context.Context, eventID string, retain bool) error {
	method := http.MethodPost
	if !retain {
		method = http.MethodDelete
	}

	var resp retainResponse
	if err := e.call(ctx, method, "/api/events/"+url.PathEscape(eventID)+"/retain", &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &RetainError{Instance: e.cfg.ID, EventID: eventID, Retain: retain, Message: resp.Message}
	}
	return nil
}

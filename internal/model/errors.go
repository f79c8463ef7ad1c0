package model

import "fmt"

// RequestError is a failure that maps to an HTTP status for the caller.
// Message is safe to return to clients.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// HTTPStatus implements resilience.StatusCoder.
func (e *RequestError) HTTPStatus() int { return e.Status }

// Messages shared by every operation that calls the completion service.
const (
	MsgRateLimited    = "Rate limit exceeded after retries. Please try again later."
	MsgQuotaExhausted = "AI credits exhausted. Please add credits to continue."
)

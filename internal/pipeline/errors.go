package pipeline

import (
	"net/http"

	"github.com/sells-group/faculty-cli/internal/model"
)

// Messages returned to callers.
const (
	MsgURLRequired    = "Faculty URL is required"
	MsgURLInvalid     = "Faculty URL must be an absolute http(s) URL"
	MsgRateLimited    = model.MsgRateLimited
	MsgQuotaExhausted = model.MsgQuotaExhausted
)

func badRequest(msg string) *model.RequestError {
	return &model.RequestError{Status: http.StatusBadRequest, Message: msg}
}

var (
	errRateLimited = &model.RequestError{Status: http.StatusTooManyRequests, Message: MsgRateLimited}
	errQuota       = &model.RequestError{Status: http.StatusPaymentRequired, Message: MsgQuotaExhausted}
)

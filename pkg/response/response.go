package response

import (
	"net/http"
	"time"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// Success builds a successful StandardResponse envelope.
func Success(requestID string, status int, message string, metadata map[string]string) entity.StandardResponse {
	if status == 0 {
		status = http.StatusOK
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return entity.StandardResponse{
		Success:    true,
		Message:    message,
		StatusCode: int32(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		RequestID:  requestID,
		Errors:     []string{},
		Metadata:   metadata,
	}
}

// Error builds a failed StandardResponse envelope.
func Error(requestID string, status int, message string, errs ...string) entity.StandardResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if errs == nil {
		errs = []string{}
	}
	return entity.StandardResponse{
		Success:    false,
		Message:    message,
		StatusCode: int32(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		RequestID:  requestID,
		Errors:     errs,
		Metadata:   map[string]string{},
	}
}

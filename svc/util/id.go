package util

import "github.com/google/uuid"

// NewRequestID correlates one outbound API call across log lines.
func NewRequestID() string {
	return uuid.NewString()
}

package validation

import (
	"errors"

	"devflow/pkg/apierrors"
)

// PayloadError rejects a request body. MsgKey is the translated message the
// client receives with the 400.
type PayloadError struct {
	MsgKey string
}

func (e *PayloadError) Error() string {
	return "invalid payload: " + e.MsgKey
}

func invalid(msgKey string) error {
	return &PayloadError{MsgKey: msgKey}
}

// MessageKey returns the message key carried by err, or the generic
// invalid payload key.
func MessageKey(err error) string {
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return payloadErr.MsgKey
	}
	return apierrors.MsgInvalidPayload
}

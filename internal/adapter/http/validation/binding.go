package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"devflow/pkg/apierrors"
)

// bindingMessages maps "Field.tag" of a failed binding rule to its message key.
var bindingMessages = map[string]string{
	"Email.required":    apierrors.MsgCredentialsRequired,
	"Email.email":       apierrors.MsgInvalidEmail,
	"Email.max":         apierrors.MsgInvalidEmail,
	"Password.required": apierrors.MsgCredentialsRequired,
	"Password.max":      apierrors.MsgPasswordTooLong,
	"Action.required":   apierrors.MsgInvalidFriendAction,
	"ID.required":       apierrors.MsgInvalidTelegramLogin,
	"AuthDate.required": apierrors.MsgInvalidTelegramLogin,
	"Hash.required":     apierrors.MsgInvalidTelegramLogin,
}

// BindingMessageKey explains a gin binding failure with the message key of
// the first violated rule. Malformed JSON and unmapped rules fall back to
// the generic invalid payload key.
func BindingMessageKey(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apierrors.MsgInvalidPayload
	}

	first := validationErrs[0]
	if key, ok := bindingMessages[first.Field()+"."+first.Tag()]; ok {
		return key
	}
	return apierrors.MsgInvalidPayload
}

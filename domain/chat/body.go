package chat

import (
	goerrors "errors"
	"strings"

	"talent-chat/errors"

	"github.com/go-playground/validator/v10"
)

// MaxBodyLength is counted in characters (runes) after trimming.
const MaxBodyLength = 1000

var validate = validator.New()

type outgoingBody struct {
	Text string `validate:"required,max=1000"`
}

// PrepareBody trims a body typed by the user and checks it can be transmitted.
func PrepareBody(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if err := validate.Struct(outgoingBody{Text: text}); err != nil {
		var fieldErrors validator.ValidationErrors
		if goerrors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Tag() == "max" {
			return "", errors.ErrMessageTooLong
		}
		return "", errors.ErrEmptyMessage
	}
	return text, nil
}

package validator

import (
	"fmt"
	"strings"

	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Struct validates v and folds every violation into one BadRequest error,
// which the central responder renders as a 400.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Wrap(apperr.BadRequest, "Invalid request body", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apperr.Newf(apperr.BadRequest, "Invalid data: %s", strings.Join(msgs, ", "))
}

package settings

import (
	"econ-lab/domain"
	"econ-lab/errors"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks a document and returns every problem found, joined.
func Validate(doc Document) error {
	var errs []error
	if err := validate.Struct(doc); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}

	names := lo.Map(doc.SessionConfigs, func(t domain.SessionTemplate, _ int) string { return t.Name })
	for _, name := range lo.FindDuplicates(names) {
		errs = append(errs, fmt.Errorf("%w: %q", errors.ErrDuplicateSessionName, name))
	}

	roomNames := lo.Map(doc.Rooms, func(r domain.Room, _ int) string { return r.Name })
	for _, name := range lo.FindDuplicates(roomNames) {
		errs = append(errs, fmt.Errorf("%w: %q", errors.ErrDuplicateRoom, name))
	}

	errs = append(errs, fieldSetErrors("participant_fields", doc.ParticipantFields)...)
	errs = append(errs, fieldSetErrors("session_fields", doc.SessionFields)...)

	if doc.LanguageCode != "" {
		if _, err := language.Parse(doc.LanguageCode); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", errors.ErrInvalidLanguage, doc.LanguageCode))
		}
	}
	if doc.RealWorldCurrencyCode != "" {
		if _, err := currency.ParseISO(doc.RealWorldCurrencyCode); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", errors.ErrInvalidCurrency, doc.RealWorldCurrencyCode))
		}
	}
	return stderrors.Join(errs...)
}

func fieldSetErrors(kind string, names []string) []error {
	var errs []error
	fields := domain.FieldSet(names)
	for _, name := range fields.Duplicates() {
		errs = append(errs, fmt.Errorf("%w: %s.%s", errors.ErrDuplicateField, kind, name))
	}
	for _, name := range fields.Reserved() {
		errs = append(errs, fmt.Errorf("%w: %s.%s", errors.ErrReservedField, kind, name))
	}
	return errs
}

// fieldErrors maps validator failures onto the package sentinels so
// callers can match them with errors.Is.
func fieldErrors(err error) []error {
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return []error{fmt.Errorf("%w: %v", errors.ErrInvalidSettings, err)}
	}
	return lo.Map(validationErrors, func(fe validator.FieldError, _ int) error {
		switch {
		case strings.HasPrefix(fe.StructField(), "AppSequence"):
			return fmt.Errorf("%w: %s failed on %q", errors.ErrEmptyAppSequence, fe.Namespace(), fe.Tag())
		case fe.StructField() == "NumDemoParticipants":
			return fmt.Errorf("%w: %s=%v", errors.ErrInvalidDemoParticipants, fe.Namespace(), fe.Value())
		default:
			return fmt.Errorf("%w: %s failed on %q", errors.ErrInvalidSettings, fe.Namespace(), fe.Tag())
		}
	})
}

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// NonFieldErrors is the details key for errors not tied to one field.
const NonFieldErrors = "non_field_errors"

var (
	usernameTag   = "username"
	usernameText  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

	requiredTag  = "required"
	requiredText = "This field is required."

	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records another field message and returns the receiver.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func initValidator() {
	validate = validator.New()
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(usernameTag, func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	registerTranslation(usernameTag, usernameText, false)
	registerTranslation(requiredTag, requiredText, true)
}

func registerTranslation(tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Validate runs struct validation and converts failures into a
// *ValidationError.
func Validate(s interface{}) error {
	validatorOnce.Do(initValidator)

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fe.Translate(translator))
	}
	return verr
}

// ParseBody decodes the request body into out. JSON type mismatches are
// reported against the offending field.
func ParseBody(c *fiber.Ctx, out interface{}) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErrors(c.Body(), out, typeErr)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("JSON parse error - %s", syntaxErr.Error()))
	}
	return fiber.NewError(fiber.StatusBadRequest, "Cannot parse request body")
}

// typeErrors reports every top-level key whose value does not fit its field.
// encoding/json stops at the first mismatch, so each key is decoded on its own
// into a scratch value of the same type.
func typeErrors(body []byte, out interface{}, first *json.UnmarshalTypeError) error {
	verr := &ValidationError{Fields: map[string]string{}}

	var raw map[string]json.RawMessage
	target := reflect.TypeOf(out)
	if target.Kind() == reflect.Ptr && json.Unmarshal(body, &raw) == nil {
		for key, value := range raw {
			single, err := json.Marshal(map[string]json.RawMessage{key: value})
			if err != nil {
				continue
			}
			scratch := reflect.New(target.Elem()).Interface()
			var te *json.UnmarshalTypeError
			if errors.As(json.Unmarshal(single, scratch), &te) {
				field := te.Field
				if field == "" {
					field = key
				}
				verr.Add(field, typeMessage(te.Type))
			}
		}
	}

	if len(verr.Fields) == 0 {
		field := first.Field
		if field == "" {
			field = NonFieldErrors
		}
		verr.Add(field, typeMessage(first.Type))
	}
	return verr
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	default:
		return fmt.Sprintf("Expected a value of type %s.", t.Kind())
	}
}

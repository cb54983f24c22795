// Package validation wraps go-playground/validator with english messages and
// JSON field names, and converts failures into domain.ValidationError.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// custom validation tags
const (
	notBlankTag = "notblank"
)

// Validator validates input structs. It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with english translations registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)

	// A RegisterTranslationsFunc is required but the default translations are
	// already registered, so a noop is passed.
	registerFn := func(ut.Translator) error { return nil }
	_ = v.RegisterTranslation(notBlankTag, trans, registerFn, func(_ ut.Translator, fe validator.FieldError) string {
		return fe.Field() + " cannot be blank"
	})

	return &Validator{validate: v, translator: trans}
}

// Struct validates s. It returns nil or a *domain.ValidationError with one
// problem per failing field, prefixed by the field's JSON path.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fieldPath(fe.Namespace())+": "+fe.Translate(v.translator))
	}
	return domain.NewValidationError(problems...)
}

// fieldPath drops the root struct name from a validator namespace,
// e.g. "TemplateSchema.projects[0].name" -> "projects[0].name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

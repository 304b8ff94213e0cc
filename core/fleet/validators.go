package fleet

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/opsdesk/core"
)

var (
	componentRequiredTag  = "component_required"
	componentRequiredText = "the serviced component is required for maintenance"
)

// InitValidators registers the fleet validations on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(newEventStructValidation, NewEvent{})
	core.RegisterCustomTranslation(validate, translator, componentRequiredTag, componentRequiredText)
}

// newEventStructValidation does NewEvent's struct level validation
func newEventStructValidation(sl validator.StructLevel) {
	if ne, ok := sl.Current().Interface().(NewEvent); ok {
		if ne.Category == CategoryMaintenance && ne.Component == "" {
			sl.ReportError(ne.Component, "component", "Component", componentRequiredTag, "")
		}
	}
}

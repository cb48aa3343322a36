package entity

import "strings"

// ValidationError - ошибка, привязанная к полю. Err (если задан) - сентинел для errors.Is,
// на провод не уходит.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors - список ошибок валидации. Пустой список означает "валидно".
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(ve))
	for _, e := range ve {
		errs = append(errs, e)
	}
	return errs
}

// HasField сообщает, есть ли ошибка для указанного поля.
func (ve ValidationErrors) HasField(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// NewFieldError - одиночная ошибка валидации.
func NewFieldError(field, message string, sentinel error) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Err: sentinel}}
}

package templates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTemplate indicates the template name is not one of the
// recognized templates.
var ErrUnknownTemplate = errors.New("templates: unknown template")

// Fields are the substitution values for one appointment email.
type Fields struct {
	Patient string
	Date    string
	Time    string
	Type    string
}

// Render looks up the named template and substitutes each placeholder
// exactly once (first occurrence only). Date, time, and type values are
// prefixed with a space so they sit next to their "Label:" markers.
func Render(name string, f Fields) (string, error) {
	var tmpl string
	switch name {
	case Confirmation:
		tmpl = confirmationTemplate
	case Reminder:
		tmpl = reminderTemplate
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	body := tmpl
	body = strings.Replace(body, "$PATIENT$", f.Patient, 1)
	body = strings.Replace(body, "$DATE$", " "+f.Date, 1)
	body = strings.Replace(body, "$TIME$", " "+f.Time, 1)
	body = strings.Replace(body, "$TYPE$", " "+f.Type, 1)
	return body, nil
}

// Subject returns the subject line for the named template.
func Subject(name string) (string, error) {
	subject, ok := Subjects[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return subject, nil
}

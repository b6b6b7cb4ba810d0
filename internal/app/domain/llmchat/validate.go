package llmchat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists the problems found in a decoded model payload. It
// matches models.ErrValidation with errors.Is.
type ValidationError struct {
	Subject  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == models.ErrValidation }

func structProblems(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return problems
}

// ValidateItinerary checks required fields and activity types, and that the
// day plans are numbered 1..requestedDays in order. A requestedDays of zero
// skips the count check.
func ValidateItinerary(it *models.Itinerary, requestedDays int) error {
	if it == nil {
		return &ValidationError{Subject: "itinerary", Problems: []string{"empty payload"}}
	}
	problems := structProblems(it)

	if requestedDays > 0 && len(it.Itinerary) != requestedDays {
		problems = append(problems, fmt.Sprintf("expected %d day plans, got %d", requestedDays, len(it.Itinerary)))
	}
	for i, day := range it.Itinerary {
		if day.Day != i+1 {
			problems = append(problems, fmt.Sprintf("day plan %d is numbered %d", i+1, day.Day))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Subject: "itinerary", Problems: problems}
	}
	return nil
}

// ValidatePlaceDetail checks the place payload names the place.
func ValidatePlaceDetail(p *models.PlaceDetail) error {
	if p == nil {
		return &ValidationError{Subject: "place details", Problems: []string{"empty payload"}}
	}
	if problems := structProblems(p); len(problems) > 0 {
		return &ValidationError{Subject: "place details", Problems: problems}
	}
	return nil
}

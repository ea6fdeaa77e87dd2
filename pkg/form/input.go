package form

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/synaptica-ai/riskform/pkg/common/models"
)

var (
	errNotNumber  = errors.New("must be a number")
	errNotInteger = errors.New("must be a whole number")
	errOutOfRange = errors.New("out of range")
)

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseMeasurements reads the posted form. Blank inputs take the field minimum, which is
// what an untouched widget submits.
func ParseMeasurements(values url.Values, fields []FieldSpec) (models.PatientMeasurements, error) {
	raw := make(map[string]float64, len(fields))
	problems := make(map[string]string)

	for _, field := range fields {
		value, err := parseField(values.Get(field.Name), field)
		if err != nil {
			problems[field.Name] = err.Error()
			continue
		}
		raw[field.Name] = value
	}
	if len(problems) > 0 {
		return models.PatientMeasurements{}, ValidationError{Fields: problems}
	}

	m := models.PatientMeasurements{
		Pregnancies:   int(raw[models.FeaturePregnancies]),
		Glucose:       raw[models.FeatureGlucose],
		BloodPressure: raw[models.FeatureBloodPressure],
		SkinThickness: raw[models.FeatureSkinThickness],
		Insulin:       raw[models.FeatureInsulin],
		BMI:           raw[models.FeatureBMI],
		Pedigree:      raw[models.FeaturePedigree],
		Age:           int(raw[models.FeatureAge]),
	}
	if err := Validate(m); err != nil {
		return models.PatientMeasurements{}, err
	}
	return m, nil
}

// Validate checks the declared bounds on an assembled measurement set.
func Validate(m models.PatientMeasurements) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		problems[fe.Field()] = describe(fe)
	}
	return ValidationError{Fields: problems}
}

func parseField(input string, field FieldSpec) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return field.Min, nil
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errNotNumber
	}
	if field.Decimals == 0 && value != math.Trunc(value) {
		return 0, errNotInteger
	}
	value = field.Round(value)
	if value < field.Min || (field.HasMax && value > field.Max) {
		return 0, fmt.Errorf("%w: %s", errOutOfRange, bounds(field))
	}
	return value, nil
}

func bounds(field FieldSpec) string {
	if field.HasMax {
		return fmt.Sprintf("must be between %s and %s", field.Format(field.Min), field.Format(field.Max))
	}
	return fmt.Sprintf("must be at least %s", field.Format(field.Min))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

package wm

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidAlteration is matched by every error Validate returns
var ErrInvalidAlteration = errors.New("invalid alteration request")

// Scheduling policies a pool may use.
const (
	SchedulingPolicyFair = "fair"
	SchedulingPolicyFIFO = "fifo"
)

// AlterationError describes why an ALTER POOL request cannot be applied.
type AlterationError struct {
	Plan   string // Resource plan name
	Pool   string // Pool path
	Field  string // Offending property (optional)
	Reason string
}

// Error returns formatted error message
func (e *AlterationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v for pool '%s' in plan '%s': field '%s': %s",
			ErrInvalidAlteration, e.Pool, e.Plan, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v for pool '%s' in plan '%s': %s", ErrInvalidAlteration, e.Pool, e.Plan, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidAlteration) hold.
func (e *AlterationError) Is(target error) bool {
	return target == ErrInvalidAlteration
}

// IsValidSchedulingPolicy checks a policy name case-insensitively
func IsValidSchedulingPolicy(policy string) bool {
	switch strings.ToLower(policy) {
	case SchedulingPolicyFair, SchedulingPolicyFIFO:
		return true
	default:
		return false
	}
}

// IsValidPoolPath checks that path is a dot-separated list of non-empty
// names without whitespace, e.g. "root.etl.nightly".
func IsValidPoolPath(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.Split(path, ".") {
		if part == "" || strings.ContainsAny(part, " \t\r\n") {
			return false
		}
	}
	return true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegisterValidation(v, "poolpath", func(fl validator.FieldLevel) bool {
		return IsValidPoolPath(fl.Field().String())
	})
	mustRegisterValidation(v, "policy", func(fl validator.FieldLevel) bool {
		return IsValidSchedulingPolicy(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f.Tag.Get("json"))
	})
	return v
}

// mustRegisterValidation panics when tag cannot be registered.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
	}
}

// jsonName returns the property name of a json struct tag.
func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

type alterPoolCheck func(d *AlterPoolDesc) *AlterationError

// alterPoolChecks run in order; the first failure is reported.
var alterPoolChecks = []alterPoolCheck{
	checkFields,
	checkSchedulingPolicyConflict,
	checkHasChanges,
	checkRenameTarget,
}

// Validate checks d before an executor applies it. The descriptor itself
// accepts contradictory input; executors call Validate so that such input
// fails with ErrInvalidAlteration instead of being applied.
func Validate(d *AlterPoolDesc) error {
	if d == nil {
		return &AlterationError{Reason: "missing descriptor"}
	}
	for _, check := range alterPoolChecks {
		if err := check(d); err != nil {
			err.Plan = d.resourcePlanName
			err.Pool = d.poolPath
			return err
		}
	}
	return nil
}

func checkFields(d *AlterPoolDesc) *AlterationError {
	err := validate.Struct(d.Request())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &AlterationError{Reason: err.Error()}
	}

	fe := verrs[0]
	return &AlterationError{Field: fe.Field(), Reason: describeTag(fe)}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "poolpath":
		return fmt.Sprintf("malformed pool path %q", fe.Value())
	case "policy":
		return fmt.Sprintf("unknown scheduling policy %v (want %s or %s)",
			fe.Value(), SchedulingPolicyFair, SchedulingPolicyFIFO)
	case "gte", "lte":
		if fe.Field() == "allocFraction" {
			return "must be between 0 and 1"
		}
		return "must not be negative"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func checkSchedulingPolicyConflict(d *AlterPoolDesc) *AlterationError {
	if d.removeSchedulingPolicy && d.schedulingPolicy.IsSet() {
		return &AlterationError{
			Field:  "schedulingPolicy",
			Reason: "cannot both set and remove the scheduling policy",
		}
	}
	return nil
}

func checkHasChanges(d *AlterPoolDesc) *AlterationError {
	if !d.allocFraction.IsSet() && !d.queryParallelism.IsSet() && !d.schedulingPolicy.IsSet() &&
		!d.removeSchedulingPolicy && !d.newPath.IsSet() {
		return &AlterationError{Reason: "no changes requested"}
	}
	return nil
}

func checkRenameTarget(d *AlterPoolDesc) *AlterationError {
	if target, ok := d.newPath.Get(); ok && target == d.poolPath {
		return &AlterationError{Field: "newPath", Reason: "rename target equals current path"}
	}
	return nil
}

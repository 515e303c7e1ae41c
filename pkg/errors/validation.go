package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds variable, group and weight names. Anything longer is
// almost certainly a corrupted input file rather than a real identifier.
const maxNameLength = 1024

// ValidateVariableName validates a variable (node) name from a dependency matrix.
//
// The rules are deliberately loose since variable names come from arbitrary
// source trees (file paths, qualified class names):
//   - No empty names
//   - No control characters
//   - Maximum length of 1024 characters
func ValidateVariableName(name string) error {
	return validateName("variable", name)
}

// ValidateWeightName validates a dependency weight name (e.g. "Cochange", "Call").
// In addition to the variable rules, weight names may not contain commas because
// the CLI accepts them as a comma-separated list.
func ValidateWeightName(name string) error {
	if err := validateName("weight", name); err != nil {
		return err
	}
	if strings.Contains(name, ",") {
		return New(ErrCodeInvalidName, "weight name cannot contain commas: %q", name)
	}
	return nil
}

func validateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}

	return nil
}

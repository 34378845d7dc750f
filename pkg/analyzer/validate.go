package analyzer

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/xunholy/bundle-advisor/pkg/model"
)

// ValidateRollup checks that input is non-empty and that every output
// declares file or dir. Each failing condition is reported.
func ValidateRollup(a *model.ConfigAnalysis) model.ValidationResult {
	var result *multierror.Error

	if len(a.Entries) == 0 {
		result = multierror.Append(result, errors.New("input is missing or empty"))
	}
	for i, out := range a.Outputs {
		if out.File == "" && out.Dir == "" {
			result = multierror.Append(result, fmt.Errorf("output %d declares neither file nor dir", i+1))
		}
	}

	return toValidationResult(result)
}

// ValidateWebpack checks that at least one entry exists and that an output
// declares both filename and path
func ValidateWebpack(a *model.ConfigAnalysis) model.ValidationResult {
	var result *multierror.Error

	if len(a.Entries) == 0 {
		result = multierror.Append(result, errors.New("entry is missing or empty"))
	}

	hasDestination := false
	for _, out := range a.Outputs {
		if out.HasDestination() {
			hasDestination = true
			break
		}
	}
	if !hasDestination {
		result = multierror.Append(result, errors.New("output declares no filename and path"))
	}

	return toValidationResult(result)
}

// Validate dispatches on the analysis kind
func Validate(a *model.ConfigAnalysis) model.ValidationResult {
	if a.Kind == model.KindRollup {
		return ValidateRollup(a)
	}
	return ValidateWebpack(a)
}

func toValidationResult(result *multierror.Error) model.ValidationResult {
	if result.ErrorOrNil() == nil {
		return model.ValidationResult{IsValid: true}
	}
	messages := make([]string, 0, len(result.Errors))
	for _, err := range result.Errors {
		messages = append(messages, err.Error())
	}
	return model.ValidationResult{IsValid: false, Errors: messages}
}

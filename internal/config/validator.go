package config

import (
	"fmt"
	"net/http"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var validMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Presets) == 0 {
		errors = append(errors, ValidationError{
			Path:    "presets",
			Message: "at least one preset is required",
		})
	}

	for _, name := range config.Names() {
		preset := config.Presets[name]
		path := fmt.Sprintf("presets.%s", name)

		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Path:    "presets",
				Message: "preset name cannot be empty",
			})
		}

		if preset.Extends == "" && preset.URL == "" {
			errors = append(errors, ValidationError{
				Path:    path + ".url",
				Message: "url is required for a preset without extends",
			})
		}

		if preset.Extends != "" {
			if _, ok := config.Presets[preset.Extends]; !ok {
				errors = append(errors, ValidationError{
					Path:    path + ".extends",
					Message: fmt.Sprintf("preset not found: %s", preset.Extends),
				})
			} else if _, err := config.Chain(name); err != nil {
				errors = append(errors, ValidationError{
					Path:    path + ".extends",
					Message: err.Error(),
				})
			}
		}

		if preset.Init.Method != "" && !stringInSlice(strings.ToUpper(preset.Init.Method), validMethods) {
			errors = append(errors, ValidationError{
				Path:    path + ".init.method",
				Message: fmt.Sprintf("invalid method: %s", preset.Init.Method),
			})
		}

		if preset.Options.PayloadAs != "" && preset.Options.PayloadAs != PayloadJSON {
			errors = append(errors, ValidationError{
				Path:    path + ".options.payloadAs",
				Message: fmt.Sprintf("unknown payload transform: %s", preset.Options.PayloadAs),
			})
		}
	}

	return errors
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

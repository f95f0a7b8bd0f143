package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FolderInput is what the folder form submits.
type FolderInput struct {
	Title       string `validate:"required"`
	Icon        string `validate:"omitempty,url"`
	DefaultOpen bool
}

// BookmarkInput is what the bookmark form submits.
type BookmarkInput struct {
	Title string `validate:"required"`
	URL   string `validate:"required"`
}

// ValidationError lists the readable problems with a submitted form.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Normalize trims the folder form fields.
func (in FolderInput) Normalize() FolderInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Icon = strings.TrimSpace(in.Icon)
	return in
}

// Validate checks the folder form. Call Normalize first.
func (in FolderInput) Validate() error {
	return validateStruct(in)
}

// Normalize trims the bookmark form fields and adds a scheme to the URL.
func (in BookmarkInput) Normalize() BookmarkInput {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = NormalizeURL(in.URL)
	return in
}

// Validate checks the bookmark form. Call Normalize first.
func (in BookmarkInput) Validate() error {
	return validateStruct(in)
}

// NormalizeURL prefixes https:// when the URL has no http(s) scheme.
// An empty input stays empty so the required check can reject it.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, formatFieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	v *validator.Validate

	// Strict post-URL pattern; the shortcode is the segment after /p/.
	postURLRe = regexp.MustCompile(`^https?://(?:www\.)?instagram\.com/p/([A-Za-z0-9_-]+)/?(?:\?.*)?$`)
	handleRe  = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
)

// IsHandle reports whether s is a syntactically valid account handle.
func IsHandle(s string) bool {
	return s != "" && handleRe.MatchString(s)
}

// IsPostURL reports whether s is a syntactically valid post URL.
func IsPostURL(s string) bool {
	return postURLRe.MatchString(s)
}

// PostShortcode extracts the shortcode from a post URL.
func PostShortcode(s string) (string, bool) {
	m := postURLRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	if v == nil {
		v = validator.New()
		// Custom: account handle
		_ = v.RegisterValidation("ig_handle", func(fl validator.FieldLevel) bool {
			return IsHandle(strings.TrimSpace(fl.Field().String()))
		})
		// Custom: post URL
		_ = v.RegisterValidation("ig_post_url", func(fl validator.FieldLevel) bool {
			return IsPostURL(strings.TrimSpace(fl.Field().String()))
		})
		// Custom: handle OR post URL (tools that accept either)
		_ = v.RegisterValidation("ig_target", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return IsHandle(s) || IsPostURL(s)
		})
		// Custom: report date, YYYY-MM-DD
		_ = v.RegisterValidation("reportdate", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return true // empty is allowed; use omitempty with this tag
			}
			_, err := time.Parse("2006-01-02", s)
			return err == nil
		})
	}
	return v
}

// ValidateStruct validates a struct and returns a user-friendly error string
// suitable for MCP tool errors. Returns empty string when valid.
func ValidateStruct(s any) string {
	if err := Validator().Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			fe := ve[0]
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				return fmt.Sprintf("INVALID_INPUT: %s is required", field)
			case "ig_handle":
				return fmt.Sprintf("INVALID_INPUT: %s must be a valid handle (letters, digits, '.', '_')", field)
			case "ig_post_url":
				return fmt.Sprintf("INVALID_INPUT: %s must be a post URL like https://www.instagram.com/p/SHORTCODE/", field)
			case "ig_target":
				return fmt.Sprintf("INVALID_INPUT: %s must be a handle or a post URL", field)
			case "reportdate":
				return fmt.Sprintf("INVALID_INPUT: %s must be formatted YYYY-MM-DD", field)
			case "min", "max", "gte", "lte":
				return fmt.Sprintf("INVALID_INPUT: %s must satisfy %s=%s", field, fe.Tag(), fe.Param())
			}
			return fmt.Sprintf("INVALID_INPUT: invalid %s", field)
		}
		return "INVALID_INPUT: invalid inputs"
	}
	return ""
}

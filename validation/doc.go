// Package validation checks configuration and request inputs.
//
// Struct tag validation uses the validator library; programmatic checks
// collect field errors. Both report an INVALID_INPUT error whose details list
// every failing field.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("host", u.Host).OneOf("scheme", u.Scheme, []string{"http", "https"})
//	err := v.Err()
package validation

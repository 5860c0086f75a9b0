package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBaseURL = "https://cheddargetter.com"
	DefaultTimeout = 10 * time.Second
)

// Config holds everything the transport needs to talk to the API.
//
// Fields:
//   - BaseURL: scheme and host; requests go to <BaseURL>/xml/<path>.
//   - Username / Password: HTTP Basic credentials.
//   - ProductCode: default product code appended to every request that
//     does not carry its own override.
//   - Timeout: per-request deadline.
type Config struct {
	BaseURL     string        `json:"base_url" validate:"required,url"`
	Username    string        `json:"username" validate:"required"`
	Password    string        `json:"password" validate:"required"`
	ProductCode string        `json:"product_code"`
	Timeout     time.Duration `json:"timeout" validate:"gt=0"`
}

// LoadDefaults fills BaseURL and Timeout; credentials have no default.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.Timeout = DefaultTimeout
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first problem as an ErrConfiguration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be an absolute URL"
	case "gt":
		return fe.Field() + " must be positive"
	default:
		return fe.Field() + " is invalid (" + fe.Tag() + ")"
	}
}

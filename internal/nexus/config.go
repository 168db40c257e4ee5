// Package nexus loads typed configuration from the environment and an
// optional env/yaml file, then validates it.
package nexus

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// ConfigError describes why a configuration could not be loaded.
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Validator validates a loaded configuration struct.
type Validator interface {
	Validate(cfg any) error
}

// StructValidator applies `validate` struct tags.
type StructValidator struct {
	v *validator.Validate
}

func NewStructValidator() *StructValidator {
	return &StructValidator{v: validator.New()}
}

func (s *StructValidator) Validate(cfg any) error {
	return s.v.Struct(cfg)
}

type options struct {
	fileName        string
	onlyEnvironment bool
	validator       Validator
}

// Option configures Load.
type Option func(*options)

// WithFileName reads fileName in addition to the environment. A missing file
// is ignored.
func WithFileName(fileName string) Option {
	return func(o *options) {
		o.fileName = fileName
	}
}

// WithOnlyEnvironment skips file loading.
func WithOnlyEnvironment() Option {
	return func(o *options) {
		o.onlyEnvironment = true
	}
}

// WithValidator replaces the struct tag validator.
func WithValidator(v Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// Load fills cfg, which must be a pointer to a struct. Values set in the file
// override environment values and defaults.
func Load(cfg any, opts ...Option) error {
	o := options{
		fileName:  ".env",
		validator: NewStructValidator(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment variables", Cause: err}
	}

	if !o.onlyEnvironment && fileExists(o.fileName) {
		fileCfg := reflect.New(v.Elem().Type()).Interface()
		if err := cleanenv.ReadConfig(o.fileName, fileCfg); err != nil {
			return &ConfigError{Code: ErrCodeFileNotFound, Message: "failed to read " + o.fileName, Cause: err}
		}
		if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
			return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge configuration sources", Cause: err}
		}
	}

	if o.validator != nil {
		if err := o.validator.Validate(cfg); err != nil {
			return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
		}
	}
	return nil
}

// IsCode reports whether err is a ConfigError with the given code.
func IsCode(err error, code string) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Code == code
}

func fileExists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

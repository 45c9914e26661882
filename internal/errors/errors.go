package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DocsLocalLiveTrading is the documentation page referenced by configuration
// diagnostics. Every fatal validation error points the user here.
const DocsLocalLiveTrading = "https://www.lean.io/docs/lean-cli/tutorials/live-trading/local-live-trading"

// Category classifies fatal CLI errors by the subsystem that produced them.
type Category string

const (
	CategoryConfig     Category = "CONFIG"
	CategoryValidation Category = "VALIDATION"
	CategoryAPI        Category = "API"
	CategoryDocker     Category = "DOCKER"
	CategoryProject    Category = "PROJECT"
)

// CLIError is a categorized error with enough context for the user to
// self-correct. None of these are retried; they all terminate the command.
type CLIError struct {
	Category   Category
	Component  string
	Message    string
	Underlying error
	DocsURL    string
}

func (e *CLIError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Message)
}

func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// WithDocs attaches a documentation URL to the error.
func (e *CLIError) WithDocs(url string) *CLIError {
	e.DocsURL = url
	return e
}

// New creates a categorized CLI error.
func New(category Category, component, message string) *CLIError {
	return &CLIError{Category: category, Component: component, Message: message}
}

// Wrap wraps an underlying error with CLI error context.
func Wrap(err error, category Category, component, message string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Component: component, Message: message, Underlying: err}
}

// DocsLinked is implemented by errors that carry a documentation reference.
type DocsLinked interface {
	Docs() string
}

func (e *CLIError) Docs() string { return e.DocsURL }

// ConfigNotFoundError indicates no configuration file could be resolved,
// either at an explicit path or by searching ancestor directories.
type ConfigNotFoundError struct {
	// ExplicitPath is set when the user pointed at a specific file.
	ExplicitPath string
	// SearchRoot is the directory the upward search started from.
	SearchRoot string
}

func (e *ConfigNotFoundError) Error() string {
	if e.ExplicitPath != "" {
		return fmt.Sprintf("configuration file %s does not exist or is not a file", e.ExplicitPath)
	}
	return fmt.Sprintf("no configuration file found in %s or any of its parent directories, run `leanctl init` to create one", e.SearchRoot)
}

func (e *ConfigNotFoundError) Docs() string { return DocsLocalLiveTrading }

// EnvironmentUndeclaredError indicates the named environment is absent from
// the configuration document.
type EnvironmentUndeclaredError struct {
	Environment string
	ConfigPath  string
}

func (e *EnvironmentUndeclaredError) Error() string {
	return fmt.Sprintf("%s does not contain an environment named '%s'", e.ConfigPath, e.Environment)
}

func (e *EnvironmentUndeclaredError) Docs() string { return DocsLocalLiveTrading }

// MissingRequiredKeyError indicates an environment does not declare one or
// both of the keys every live environment must carry. Both missing keys are
// reported in a single error.
type MissingRequiredKeyError struct {
	Environment string
	Keys        []string
}

func (e *MissingRequiredKeyError) Error() string {
	return fmt.Sprintf("the '%s' environment does not specify a %s", e.Environment, strings.Join(e.Keys, " or a "))
}

func (e *MissingRequiredKeyError) Docs() string { return DocsLocalLiveTrading }

// NotLiveEnvironmentError indicates a live-trading command targeted an
// environment whose live-mode flag is off.
type NotLiveEnvironmentError struct {
	Environment string
}

func (e *NotLiveEnvironmentError) Error() string {
	return fmt.Sprintf("the '%s' environment is not a live trading environment (live-mode is set to false)", e.Environment)
}

func (e *NotLiveEnvironmentError) Docs() string { return DocsLocalLiveTrading }

// MissingRequiredPropertiesError enumerates every required property that is
// absent or empty, so the caller can render one unified diagnostic instead of
// failing property by property.
type MissingRequiredPropertiesError struct {
	Environment string
	ConfigPath  string
	Missing     []string
}

func (e *MissingRequiredPropertiesError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	noun := "property"
	if len(missing) > 1 {
		noun = "properties"
	}
	return fmt.Sprintf("please configure the following missing %s in %s: %s",
		noun, e.ConfigPath, strings.Join(missing, ", "))
}

func (e *MissingRequiredPropertiesError) Docs() string { return DocsLocalLiveTrading }

// OrganizationNotFoundError indicates the user is not a member of any
// organization matching the given name or id.
type OrganizationNotFoundError struct {
	Input string
}

func (e *OrganizationNotFoundError) Error() string {
	return fmt.Sprintf("you are not a member of an organization with name or id '%s'", e.Input)
}

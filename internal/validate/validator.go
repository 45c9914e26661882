// Package validate checks that a merged configuration document carries every
// property its environment's brokerage and data feed require.
package validate

import (
	lerrors "github.com/tradeops/leanctl/internal/errors"
	"github.com/tradeops/leanctl/internal/registry"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// Validate verifies that envName names a usable live-trading environment in
// doc. It is a pure function of its inputs and the static requirement
// tables: no I/O, no mutation.
//
// The empty string counts as a missing value; false and zero do not. A
// required boolean must therefore never be serialized as "".
func Validate(doc *leanconfig.Document, envName, configPath string) error {
	environments, ok := doc.Section("environments")
	if !ok {
		return &lerrors.EnvironmentUndeclaredError{Environment: envName, ConfigPath: configPath}
	}
	section, ok := environments.Sub(envName)
	if !ok {
		return &lerrors.EnvironmentUndeclaredError{Environment: envName, ConfigPath: configPath}
	}

	var missingKeys []string
	for _, key := range []string{"live-mode-brokerage", "data-queue-handler"} {
		if !section.Has(key) {
			missingKeys = append(missingKeys, key)
		}
	}
	if len(missingKeys) > 0 {
		return &lerrors.MissingRequiredKeyError{Environment: envName, Keys: missingKeys}
	}

	if liveMode, ok := section.Get("live-mode"); ok && !truthy(liveMode) {
		return &lerrors.NotLiveEnvironmentError{Environment: envName}
	}

	brokerage := section.GetString("live-mode-brokerage")
	handler := section.GetString("data-queue-handler")

	// Unknown identifiers contribute no requirements; they are not an error
	// here, the engine itself rejects handlers it cannot instantiate.
	required := append(registry.BrokerageRequirements(brokerage),
		registry.DataQueueHandlerRequirements(handler)...)

	seen := make(map[string]bool, len(required))
	var missing []string
	for _, key := range required {
		if seen[key] {
			continue
		}
		seen[key] = true
		if propertyMissing(doc, key) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return &lerrors.MissingRequiredPropertiesError{
			Environment: envName,
			ConfigPath:  configPath,
			Missing:     missing,
		}
	}
	return nil
}

// propertyMissing reports whether a required key is absent from the document
// root or present as the empty string.
func propertyMissing(doc *leanconfig.Document, key string) bool {
	v, ok := doc.Get(key)
	if !ok {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

func truthy(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value != "" && value != "false"
	case int:
		return value != 0
	case float64:
		return value != 0
	case nil:
		return false
	}
	return true
}

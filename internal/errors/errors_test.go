package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIError_Format(t *testing.T) {
	err := New(CategoryDocker, "docker", "create container")
	assert.Equal(t, "[DOCKER:docker] create container", err.Error())

	wrapped := Wrap(fmt.Errorf("connection refused"), CategoryAPI, "organizations", "request failed")
	assert.Equal(t, "[API:organizations] request failed: connection refused", wrapped.Error())
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, CategoryConfig, "config", "noop"))
}

func TestMissingRequiredProperties_SortedAndPluralized(t *testing.T) {
	err := &MissingRequiredPropertiesError{
		Environment: "live",
		ConfigPath:  "/work/lean.yaml",
		Missing:     []string{"oanda-environment", "oanda-access-token"},
	}
	assert.Equal(t,
		"please configure the following missing properties in /work/lean.yaml: oanda-access-token, oanda-environment",
		err.Error())

	single := &MissingRequiredPropertiesError{
		Environment: "live",
		ConfigPath:  "/work/lean.yaml",
		Missing:     []string{"oanda-access-token"},
	}
	assert.Contains(t, single.Error(), "missing property in")
}

func TestMissingRequiredKey_JoinsKeys(t *testing.T) {
	err := &MissingRequiredKeyError{
		Environment: "live",
		Keys:        []string{"live-mode-brokerage", "data-queue-handler"},
	}
	assert.Equal(t,
		"the 'live' environment does not specify a live-mode-brokerage or a data-queue-handler",
		err.Error())
}

func TestConfigNotFound_Variants(t *testing.T) {
	explicit := &ConfigNotFoundError{ExplicitPath: "/work/custom.yaml"}
	assert.Contains(t, explicit.Error(), "/work/custom.yaml")

	searched := &ConfigNotFoundError{SearchRoot: "/work/project"}
	assert.Contains(t, searched.Error(), "/work/project")
	assert.Contains(t, searched.Error(), "parent directories")
}

func TestValidationErrors_CarryDocsLink(t *testing.T) {
	for _, err := range []DocsLinked{
		&ConfigNotFoundError{SearchRoot: "/work"},
		&EnvironmentUndeclaredError{Environment: "live"},
		&MissingRequiredKeyError{Environment: "live"},
		&NotLiveEnvironmentError{Environment: "live"},
		&MissingRequiredPropertiesError{Environment: "live"},
	} {
		assert.Equal(t, DocsLocalLiveTrading, err.Docs())
	}
}

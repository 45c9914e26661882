// Package session scopes all per-invocation state. Anything the source of a
// command might want to cache (the loaded configuration document, the
// organization list) lives on a Session constructed at command start and
// discarded at exit, never on a package-level variable. Hosting the CLI
// inside a long-lived process therefore cannot leak state between commands.
package session

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/tradeops/leanctl/internal/api"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// OrganizationResolver resolves an organization name or id to an id.
type OrganizationResolver interface {
	ResolveOrganization(ctx context.Context, nameOrID string) (string, error)
}

// Session owns the state of exactly one command invocation.
type Session struct {
	Log *zap.Logger

	explicitConfig string
	store          *leanconfig.Store
	storeErr       error
	loaded         bool

	resolver OrganizationResolver
}

// New creates a session. explicitConfig is the --lean-config flag value, ""
// to search ancestor directories.
func New(log *zap.Logger, explicitConfig string, resolver OrganizationResolver) *Session {
	return &Session{Log: log, explicitConfig: explicitConfig, resolver: resolver}
}

// Config loads the configuration store on first use and returns the same
// store on every later call within this session.
func (s *Session) Config() (*leanconfig.Store, error) {
	if !s.loaded {
		s.store, s.storeErr = leanconfig.Load(s.explicitConfig)
		s.loaded = true
	}
	return s.store, s.storeErr
}

// pathKeys are keys whose values point at local files. A persisted path that
// no longer resolves to a file is not a usable default.
var pathKeys = map[string]bool{
	"iqfeed-iqconnect": true,
}

// DefaultValue returns the persisted configuration value for a key, used as
// the default for the matching CLI option. The empty string counts as unset,
// as does a path-typed value whose file no longer exists. A missing
// configuration file simply yields no default.
func (s *Session) DefaultValue(key string) (string, bool) {
	store, err := s.Config()
	if err != nil {
		return "", false
	}
	v, ok := store.Document().Get(key)
	if !ok {
		return "", false
	}
	str, isString := v.(string)
	if isString && str == "" {
		return "", false
	}
	if isString && pathKeys[key] {
		info, err := os.Stat(str)
		if err != nil || info.IsDir() {
			return "", false
		}
	}
	if isString {
		return str, true
	}
	// Numbers and booleans round-trip through their document form.
	data, err := leanconfig.ScalarString(v)
	if err != nil {
		return "", false
	}
	return data, true
}

// ResolveOrganization resolves an organization reference through the API
// client, whose cache is scoped to this session.
func (s *Session) ResolveOrganization(ctx context.Context, nameOrID string) (string, error) {
	return s.resolver.ResolveOrganization(ctx, nameOrID)
}

var _ OrganizationResolver = (*api.Client)(nil)

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	calls int
	id    string
	err   error
}

func (f *fakeResolver) ResolveOrganization(ctx context.Context, nameOrID string) (string, error) {
	f.calls++
	return f.id, f.err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lean.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig_LoadedOnce(t *testing.T) {
	path := writeConfig(t, "data-folder: data\n")
	sess := New(zap.NewNop(), path, nil)

	first, err := sess.Config()
	require.NoError(t, err)
	second, err := sess.Config()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestConfig_ErrorIsSticky(t *testing.T) {
	sess := New(zap.NewNop(), "/nonexistent/lean.yaml", nil)

	_, err1 := sess.Config()
	_, err2 := sess.Config()

	require.Error(t, err1)
	assert.Equal(t, err1, err2)
}

func TestDefaultValue_String(t *testing.T) {
	path := writeConfig(t, "oanda-account-id: \"001\"\n")
	sess := New(zap.NewNop(), path, nil)

	v, ok := sess.DefaultValue("oanda-account-id")
	assert.True(t, ok)
	assert.Equal(t, "001", v)
}

func TestDefaultValue_EmptyStringIsUnset(t *testing.T) {
	path := writeConfig(t, "oanda-access-token: \"\"\n")
	sess := New(zap.NewNop(), path, nil)

	_, ok := sess.DefaultValue("oanda-access-token")
	assert.False(t, ok)
}

func TestDefaultValue_AbsentKey(t *testing.T) {
	path := writeConfig(t, "data-folder: data\n")
	sess := New(zap.NewNop(), path, nil)

	_, ok := sess.DefaultValue("oanda-account-id")
	assert.False(t, ok)
}

func TestDefaultValue_NonStringScalar(t *testing.T) {
	path := writeConfig(t, "tradier-use-sandbox: true\nbloomberg-server-port: 8194\n")
	sess := New(zap.NewNop(), path, nil)

	v, ok := sess.DefaultValue("tradier-use-sandbox")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = sess.DefaultValue("bloomberg-server-port")
	assert.True(t, ok)
	assert.Equal(t, "8194", v)
}

func TestDefaultValue_StaleBinaryPathIsUnset(t *testing.T) {
	path := writeConfig(t, "iqfeed-iqconnect: /no/such/IQConnect.exe\n")
	sess := New(zap.NewNop(), path, nil)

	_, ok := sess.DefaultValue("iqfeed-iqconnect")
	assert.False(t, ok)
}

func TestDefaultValue_ExistingBinaryPath(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "IQConnect.exe")
	require.NoError(t, os.WriteFile(binary, []byte("bin"), 0755))

	path := writeConfig(t, "iqfeed-iqconnect: "+binary+"\n")
	sess := New(zap.NewNop(), path, nil)

	v, ok := sess.DefaultValue("iqfeed-iqconnect")
	assert.True(t, ok)
	assert.Equal(t, binary, v)
}

func TestDefaultValue_DirectoryIsNotABinary(t *testing.T) {
	path := writeConfig(t, "iqfeed-iqconnect: "+t.TempDir()+"\n")
	sess := New(zap.NewNop(), path, nil)

	_, ok := sess.DefaultValue("iqfeed-iqconnect")
	assert.False(t, ok)
}

func TestDefaultValue_MissingConfigFile(t *testing.T) {
	sess := New(zap.NewNop(), "/nonexistent/lean.yaml", nil)

	_, ok := sess.DefaultValue("oanda-account-id")
	assert.False(t, ok)
}

func TestResolveOrganization_Delegates(t *testing.T) {
	resolver := &fakeResolver{id: "abc123"}
	sess := New(zap.NewNop(), "", resolver)

	id, err := sess.ResolveOrganization(context.Background(), "Testing Corp")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, 1, resolver.calls)
}

func TestSessions_AreIsolated(t *testing.T) {
	pathA := writeConfig(t, "data-folder: a\n")
	pathB := writeConfig(t, "data-folder: b\n")

	sessA := New(zap.NewNop(), pathA, nil)
	sessB := New(zap.NewNop(), pathB, nil)

	a, ok := sessA.DefaultValue("data-folder")
	assert.True(t, ok)
	b, ok := sessB.DefaultValue("data-folder")
	assert.True(t, ok)

	assert.Equal(t, "a", a)
	assert.Equal(t, "b", b)
}

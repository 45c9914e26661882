package runner

import (
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/tradeops/leanctl/internal/registry"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// iqfeedStartupDelay gives IQConnect time to open its local socket before
// the engine container tries to connect.
const iqfeedStartupDelay = 10 * time.Second

// StartIQConnectIfNeeded launches the local IQConnect helper process when
// the environment uses IQFeed as its data queue handler. Other handlers need
// no local helper and return immediately.
func StartIQConnectIfNeeded(doc *leanconfig.Document, envName string, log *zap.Logger) error {
	environments, ok := doc.Section("environments")
	if !ok {
		return nil
	}
	env, ok := environments.Sub(envName)
	if !ok || env.GetString("data-queue-handler") != registry.IQFeed.ID() {
		return nil
	}

	args := []string{
		"-product", doc.GetString("iqfeed-productName"),
		"-version", doc.GetString("iqfeed-version"),
	}
	if username := doc.GetString("iqfeed-username"); username != "" {
		args = append(args, "-login", username)
	}
	if password := doc.GetString("iqfeed-password"); password != "" {
		args = append(args, "-password", password)
	}

	cmd := exec.Command(doc.GetString("iqfeed-iqconnect"), args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	log.Info("waiting for IQFeed to start", zap.Duration("delay", iqfeedStartupDelay))
	time.Sleep(iqfeedStartupDelay)
	return nil
}

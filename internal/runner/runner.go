// Package runner turns a validated configuration document into a running
// engine container: it stages the config on disk, wires the mounts, ports
// and environment, and launches the image through the Docker daemon.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	lerrors "github.com/tradeops/leanctl/internal/errors"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// DefaultEngineImage is the image launched when --image is not given.
const DefaultEngineImage = "quantconnect/lean:latest"

// Container paths the engine expects its inputs under.
const (
	containerConfigPath   = "/Lean/Launcher/config.yaml"
	containerAlgorithmDir = "/Lean/Algorithm"
	containerResultsDir   = "/Results"
)

// Options describes one engine launch.
type Options struct {
	Image           string
	Config          *leanconfig.Document
	EnvironmentName string
	AlgorithmFile   string
	OutputDir       string
	// DebuggingPort publishes a debugger port on localhost when non-zero.
	DebuggingPort int
	Release       bool
	Detach        bool
	// Update forces an image pull even when a local copy exists.
	Update bool
}

// Runner launches the engine.
type Runner struct {
	docker *DockerManager
	log    *zap.Logger
}

// New creates a runner on top of a Docker manager.
func New(docker *DockerManager, log *zap.Logger) *Runner {
	return &Runner{docker: docker, log: log}
}

// Run stages the merged configuration in the output directory and launches
// the engine container. A launch failure is fatal to the invoking command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if opts.Image == "" {
		opts.Image = DefaultEngineImage
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	configPath := filepath.Join(opts.OutputDir, "config.yaml")
	data, err := opts.Config.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}

	if opts.Update || !r.docker.ImageInstalled(ctx, opts.Image) {
		r.log.Info("pulling engine image", zap.String("image", opts.Image))
		if err := r.docker.PullImage(ctx, opts.Image); err != nil {
			return err
		}
	}

	containerOpts, err := r.containerOptions(opts, configPath)
	if err != nil {
		return err
	}

	containerID, err := r.docker.StartContainer(ctx, containerOpts)
	if err != nil {
		return err
	}
	r.log.Info("engine container started",
		zap.String("container", containerID),
		zap.String("environment", opts.EnvironmentName))

	if opts.Detach {
		r.log.Info("detached, container keeps running", zap.String("container", containerID))
		return nil
	}

	if err := r.docker.StreamLogs(ctx, containerID, os.Stdout); err != nil {
		return err
	}
	status, err := r.docker.WaitForExit(ctx, containerID)
	if err != nil {
		return err
	}
	if status != "exited" {
		return lerrors.New(lerrors.CategoryDocker, "runner",
			fmt.Sprintf("engine container finished with status %s", status))
	}
	return r.docker.RemoveContainer(ctx, containerID)
}

// containerOptions builds the engine invocation: config, algorithm and
// results mounts, the environment selector, and an optional debugger port.
func (r *Runner) containerOptions(opts Options, configPath string) (ContainerOptions, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return ContainerOptions{}, fmt.Errorf("resolve %s: %w", configPath, err)
	}
	absAlgorithm, err := filepath.Abs(filepath.Dir(opts.AlgorithmFile))
	if err != nil {
		return ContainerOptions{}, fmt.Errorf("resolve %s: %w", opts.AlgorithmFile, err)
	}
	absOutput, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return ContainerOptions{}, fmt.Errorf("resolve %s: %w", opts.OutputDir, err)
	}

	cmd := []string{"--config", containerConfigPath, "--environment", opts.EnvironmentName}
	env := []string{fmt.Sprintf("LEAN_ENVIRONMENT=%s", opts.EnvironmentName)}
	if opts.Release {
		env = append(env, "LEAN_BUILD_CONFIGURATION=Release")
	}

	var ports []string
	if opts.DebuggingPort > 0 {
		ports = append(ports, fmt.Sprintf("127.0.0.1:%d:%d", opts.DebuggingPort, opts.DebuggingPort))
	}

	return ContainerOptions{
		Image: opts.Image,
		Cmd:   cmd,
		Env:   env,
		Binds: []string{
			fmt.Sprintf("%s:%s", absConfig, containerConfigPath),
			fmt.Sprintf("%s:%s", absAlgorithm, containerAlgorithmDir),
			fmt.Sprintf("%s:%s", absOutput, containerResultsDir),
		},
		Ports: ports,
	}, nil
}

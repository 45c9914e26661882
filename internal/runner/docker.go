package runner

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"time"

	nat "github.com/docker/go-connections/nat"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/network"
	"github.com/moby/moby/client"

	lerrors "github.com/tradeops/leanctl/internal/errors"
)

// DockerManager wraps the Docker engine client with the handful of
// operations launching the trading engine needs.
type DockerManager struct {
	cli *client.Client
}

// NewDockerManager connects to the Docker daemon configured in the
// environment.
func NewDockerManager() (*DockerManager, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "create client")
	}
	return &DockerManager{cli: cli}, nil
}

// Close releases the client connection.
func (m *DockerManager) Close() error {
	return m.cli.Close()
}

// ImageInstalled reports whether the image is available locally.
func (m *DockerManager) ImageInstalled(ctx context.Context, image string) bool {
	_, err := m.cli.ImageInspect(ctx, image)
	return err == nil
}

// PullImage pulls the image, blocking until the daemon finishes streaming
// progress.
func (m *DockerManager) PullImage(ctx context.Context, image string) error {
	resp, err := m.cli.ImagePull(ctx, image, client.ImagePullOptions{})
	if err != nil {
		return lerrors.Wrap(err, lerrors.CategoryDocker, "docker", fmt.Sprintf("pull %s", image))
	}
	defer resp.Close()
	if _, err := io.Copy(io.Discard, resp); err != nil {
		return lerrors.Wrap(err, lerrors.CategoryDocker, "docker", fmt.Sprintf("pull %s", image))
	}
	return nil
}

// ContainerOptions describes a single engine container invocation.
type ContainerOptions struct {
	Image string
	Name  string
	Cmd   []string
	Env   []string
	// Binds are host:container mount specs.
	Binds []string
	// Ports are published port specs, e.g. "127.0.0.1:5678:5678".
	Ports []string
}

// StartContainer creates and starts a container, returning its id. The
// container is removed again when starting fails.
func (m *DockerManager) StartContainer(ctx context.Context, opts ContainerOptions) (string, error) {
	exposedPorts, portBindings, err := parsePortSpecs(opts.Ports)
	if err != nil {
		return "", err
	}

	config := &container.Config{
		Image:        opts.Image,
		Cmd:          opts.Cmd,
		Env:          opts.Env,
		ExposedPorts: exposedPorts,
	}
	hostConfig := &container.HostConfig{
		Binds:        opts.Binds,
		PortBindings: portBindings,
	}

	resp, err := m.cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config:     config,
		HostConfig: hostConfig,
		Name:       opts.Name,
	})
	if err != nil {
		return "", lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "create container")
	}

	if _, err := m.cli.ContainerStart(ctx, resp.ID, client.ContainerStartOptions{}); err != nil {
		m.cli.ContainerRemove(ctx, resp.ID, client.ContainerRemoveOptions{Force: true})
		return "", lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "start container")
	}
	return resp.ID, nil
}

// parsePortSpecs converts published port specs into the exposed-port set and
// the host bindings sent to the daemon. The host IP is carried through so a
// 127.0.0.1 spec stays bound to loopback instead of all interfaces.
func parsePortSpecs(specs []string) (network.PortSet, network.PortMap, error) {
	exposedPorts := network.PortSet{}
	portBindings := network.PortMap{}
	for _, spec := range specs {
		portSpecs, err := nat.ParsePortSpec(spec)
		if err != nil {
			return nil, nil, lerrors.Wrap(err, lerrors.CategoryDocker, "docker", fmt.Sprintf("invalid port spec %q", spec))
		}
		for _, ps := range portSpecs {
			port, err := network.ParsePort(string(ps.Port))
			if err != nil {
				return nil, nil, lerrors.Wrap(err, lerrors.CategoryDocker, "docker", fmt.Sprintf("invalid port %q", ps.Port))
			}
			var hostIP netip.Addr
			if ps.Binding.HostIP != "" {
				hostIP, err = netip.ParseAddr(ps.Binding.HostIP)
				if err != nil {
					return nil, nil, lerrors.Wrap(err, lerrors.CategoryDocker, "docker", fmt.Sprintf("invalid host ip %q", ps.Binding.HostIP))
				}
			}
			exposedPorts[port] = struct{}{}
			portBindings[port] = append(portBindings[port], network.PortBinding{
				HostIP:   hostIP,
				HostPort: ps.Binding.HostPort,
			})
		}
	}
	return exposedPorts, portBindings, nil
}

// StreamLogs copies the container's stdout and stderr to w until the
// container stops.
func (m *DockerManager) StreamLogs(ctx context.Context, containerID string, w io.Writer) error {
	reader, err := m.cli.ContainerLogs(ctx, containerID, client.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "stream logs")
	}
	defer reader.Close()
	if _, err := demuxDockerStream(w, w, reader); err != nil {
		return lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "stream logs")
	}
	return nil
}

// WaitForExit polls the container until it is no longer running and returns
// its final status string.
func (m *DockerManager) WaitForExit(ctx context.Context, containerID string) (string, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		inspect, err := m.cli.ContainerInspect(ctx, containerID, client.ContainerInspectOptions{})
		if err != nil {
			return "", lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "inspect container")
		}
		status := string(inspect.Container.State.Status)
		if status != "running" && status != "created" {
			return status, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// RemoveContainer force-removes a container.
func (m *DockerManager) RemoveContainer(ctx context.Context, containerID string) error {
	if _, err := m.cli.ContainerRemove(ctx, containerID, client.ContainerRemoveOptions{Force: true}); err != nil {
		return lerrors.Wrap(err, lerrors.CategoryDocker, "docker", "remove container")
	}
	return nil
}

// demuxDockerStream splits the multiplexed docker log stream into stdout and
// stderr writers.
func demuxDockerStream(stdout, stderr io.Writer, src io.Reader) (int64, error) {
	var total int64
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(src, header); err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		size := int(uint32(header[4])<<24 | uint32(header[5])<<16 | uint32(header[6])<<8 | uint32(header[7]))
		if size == 0 {
			continue
		}
		buf := make([]byte, size)
		if _, err := io.ReadFull(src, buf); err != nil {
			return total, err
		}
		var n int
		if header[0] == 2 {
			n, _ = stderr.Write(buf)
		} else {
			n, _ = stdout.Write(buf)
		}
		total += int64(n)
	}
}

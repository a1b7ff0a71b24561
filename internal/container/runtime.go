// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs text-extraction images under docker or podman.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	BinDocker = "docker"
	BinPodman = "podman"
)

// Runtime is a container engine able to run a conversion image with the
// resume bytes on stdin and the extracted text on stdout.
type Runtime interface {
	// Name returns the engine binary ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and its daemon answers.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with args, feeding stdin and collecting stdout. The
	// container has no network access and is removed on exit.
	Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// engine implements Runtime for one binary. Docker and podman differ only
// in the subcommand that checks for a local image.
type engine struct {
	bin         string
	inspectArgs []string
	exec        executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.RunSilent(e.bin, "info") == nil
}

func (e *engine) ImageExists(image string) error {
	args := append(append([]string{}, e.inspectArgs...), image)
	if err := e.exec.RunSilent(e.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, e.bin, err)
	}
	return nil
}

func (e *engine) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)

	var stderr strings.Builder
	if err := e.exec.RunPiped(ctx, e.bin, full, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", e.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", e.bin, image, err)
	}
	return nil
}

func newEngine(bin string, exec executor) *engine {
	inspect := []string{"image", "inspect"}
	if bin == BinPodman {
		inspect = []string{"image", "exists"}
	}
	return &engine{bin: bin, inspectArgs: inspect, exec: exec}
}

// DetectRuntime returns the preferred engine when it is usable. An empty
// preference tries docker, then podman.
func DetectRuntime(preferred string) (Runtime, error) {
	return detectRuntime(osExecutor{}, preferred)
}

func detectRuntime(exec executor, preferred string) (Runtime, error) {
	candidates := []string{BinDocker, BinPodman}
	switch preferred {
	case "":
	case BinDocker, BinPodman:
		candidates = []string{preferred}
	default:
		return nil, fmt.Errorf("unknown container runtime %q (want %s or %s)", preferred, BinDocker, BinPodman)
	}

	for _, bin := range candidates {
		if e := newEngine(bin, exec); e.Available() {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(candidates, ", "))
}

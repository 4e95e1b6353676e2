package handlers

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// CommandRunner executes a platform command. Handlers that touch the desktop
// go through this so tests can intercept the calls.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// openPath opens a file with the platform's default application.
func openPath(ctx context.Context, runner CommandRunner, path string) error {
	switch runtime.GOOS {
	case "darwin":
		return runner.Run(ctx, "open", path)
	case "windows":
		return runner.Run(ctx, "cmd", "/c", "start", "", path)
	default:
		return runner.Run(ctx, "xdg-open", path)
	}
}

func unsupportedPlatform(action string) error {
	return fmt.Errorf("handlers: %s is not supported on %s", action, runtime.GOOS)
}

package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/glorpus-work/modlayer/internal/logger"
)

// CommandLauncher runs an external command with the game dir as its
// working directory.
type CommandLauncher struct {
	Name string
	Args []string
	Env  []string // appended to the current environment

	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandLauncher returns a launcher for argv, wired to the process stdio.
func NewCommandLauncher(argv []string) (*CommandLauncher, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("no command given")
	}
	return &CommandLauncher{
		Name:   argv[0],
		Args:   argv[1:],
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Run starts the command and waits for it to exit.
func (l *CommandLauncher) Run(ctx context.Context, gameDir string) error {
	cmd := exec.CommandContext(ctx, l.Name, l.Args...)
	cmd.Dir = gameDir
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}

	logger.Info("Starting game", logger.Fields{"command": l.Name, "dir": gameDir})
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", l.Name, err)
	}
	logger.Debug("Game exited", logger.Fields{"command": l.Name})
	return nil
}

// Package open launches files and folders with the OS default handler.
package open

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dropdock/dropdock/internal/logging"
)

// launchCommand builds the platform launcher invocation. Overridable in
// tests.
var launchCommand = func(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Service opens paths with the platform's default handler. It satisfies the
// shelf's Opener interface.
type Service struct {
	logger *logging.Logger
}

// NewService returns the OS-backed opener.
func NewService() *Service {
	return &Service{logger: logging.NewLogger("open")}
}

// OpenPath hands the path to the OS default handler. The launch is fire and
// forget: the handler process is started, not awaited, so a slow application
// never blocks the UI. The child is reaped in the background.
func (s *Service) OpenPath(path string) error {
	cmd := launchCommand(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch default handler for %q: %w", path, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Debug().Err(err).Str("path", path).Msg("Default handler exited with error")
		}
	}()

	s.logger.Debug().Str("path", path).Msg("Opened with default handler")
	return nil
}

package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"studyplan/internal/modules/notify/domain"
	notifyout "studyplan/internal/modules/notify/port/out"
)

// ExecNotifier shells out to the platform notification command. It is the
// fallback when no notifier plugin is configured. There is no permission
// model at this level; support detection is the binary being on PATH.
type ExecNotifier struct{}

func NewExecNotifier() notifyout.Notifier {
	return &ExecNotifier{}
}

func (n *ExecNotifier) Supported(_ context.Context) bool {
	_, err := exec.LookPath(n.command())
	return err == nil
}

func (n *ExecNotifier) PermissionGranted(ctx context.Context) bool {
	return n.Supported(ctx)
}

func (n *ExecNotifier) RequestPermission(_ context.Context) error {
	return nil
}

func (n *ExecNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", alert.Body, alert.Title)
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	default:
		cmd = exec.CommandContext(ctx, "notify-send", alert.Title, alert.Body)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("deliver alert: %w", err)
	}
	return nil
}

func (n *ExecNotifier) command() string {
	if runtime.GOOS == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

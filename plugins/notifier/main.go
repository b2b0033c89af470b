// Reference notifier plugin. It reports permission as granted and delivers
// alerts with notify-send when available, falling back to stdout so the host
// contract can be exercised on any machine.
package main

import (
	"context"
	"fmt"
	"os/exec"

	notifyrpc "studyplan/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetCapabilities(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Capabilities, error) {
	return &notifyrpc.Capabilities{
		Name:              "reference",
		Version:           "1.0.0",
		PermissionGranted: true,
	}, nil
}

func (s *server) RequestPermission(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.PermissionResponse, error) {
	return &notifyrpc.PermissionResponse{Granted: true}, nil
}

func (s *server) Notify(ctx context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	if path, err := exec.LookPath("notify-send"); err == nil {
		if err := exec.CommandContext(ctx, path, in.Title, in.Body).Run(); err != nil {
			return &notifyrpc.NotifyResponse{Delivered: false, Error: err.Error()}, nil
		}
		return &notifyrpc.NotifyResponse{Delivered: true}, nil
	}
	fmt.Printf("[%s] %s: %s\n", in.Tag, in.Title, in.Body)
	return &notifyrpc.NotifyResponse{Delivered: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}

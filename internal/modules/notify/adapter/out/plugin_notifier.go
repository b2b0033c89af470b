package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	notifyrpc "studyplan/internal/modules/notify/adapter/out/rpc"
	"studyplan/internal/modules/notify/domain"
	notifyout "studyplan/internal/modules/notify/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 5 * time.Second
)

// PluginNotifier delivers alerts through an external notifier plugin over
// go-plugin gRPC. The plugin process is started per call and killed after;
// delivery is rare enough that connection reuse would buy nothing.
type PluginNotifier struct {
	binary string
}

func NewPluginNotifier(binary string) notifyout.Notifier {
	return &PluginNotifier{binary: binary}
}

func (n *PluginNotifier) Supported(_ context.Context) bool {
	if n.binary == "" {
		return false
	}
	info, err := os.Stat(n.binary)
	return err == nil && !info.IsDir()
}

func (n *PluginNotifier) PermissionGranted(ctx context.Context) bool {
	client, closeFn, err := n.connect(ctx)
	if err != nil {
		return false
	}
	defer closeFn()

	callCtx, cancel := n.callContext(ctx)
	defer cancel()
	capabilities, err := client.GetCapabilities(callCtx)
	if err != nil {
		return false
	}
	return capabilities.PermissionGranted
}

func (n *PluginNotifier) RequestPermission(ctx context.Context) error {
	client, closeFn, err := n.connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := n.callContext(ctx)
	defer cancel()
	response, err := client.RequestPermission(callCtx)
	if err != nil {
		return fmt.Errorf("request permission: %w", err)
	}
	if !response.Granted {
		return fmt.Errorf("notification permission denied")
	}
	return nil
}

func (n *PluginNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	client, closeFn, err := n.connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := n.callContext(ctx)
	defer cancel()
	response, err := client.Notify(callCtx, &notifyrpc.NotifyRequest{
		Title: alert.Title,
		Body:  alert.Body,
		Tag:   alert.Tag,
	})
	if err != nil {
		return fmt.Errorf("deliver alert: %w", err)
	}
	if !response.Delivered {
		return fmt.Errorf("deliver alert: %s", response.Error)
	}
	return nil
}

func (n *PluginNotifier) connect(_ context.Context) (notifyrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifyrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifyrpc.PluginMap(nil),
		Cmd:              exec.Command(n.binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(notifyrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier plugin: %w", err)
	}
	typed, ok := raw.(notifyrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (n *PluginNotifier) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, pluginCallTimeout)
}

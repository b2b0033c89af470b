package bootstrap

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	focusinadapter "studyplan/internal/modules/focus/adapter/in"
	focusoutadapter "studyplan/internal/modules/focus/adapter/out"
	focusservice "studyplan/internal/modules/focus/service"
	focususecase "studyplan/internal/modules/focus/usecase"
	notifyinadapter "studyplan/internal/modules/notify/adapter/in"
	notifyoutadapter "studyplan/internal/modules/notify/adapter/out"
	notifyout "studyplan/internal/modules/notify/port/out"
	notifyservice "studyplan/internal/modules/notify/service"
	notifyusecase "studyplan/internal/modules/notify/usecase"
	plannerinadapter "studyplan/internal/modules/planner/adapter/in"
	planneroutadapter "studyplan/internal/modules/planner/adapter/out"
	plannerservice "studyplan/internal/modules/planner/service"
	plannerusecase "studyplan/internal/modules/planner/usecase"
	quicktrackinadapter "studyplan/internal/modules/quicktrack/adapter/in"
	quicktrackoutadapter "studyplan/internal/modules/quicktrack/adapter/out"
	quicktrackservice "studyplan/internal/modules/quicktrack/service"
	quicktrackusecase "studyplan/internal/modules/quicktrack/usecase"
	trackingin "studyplan/internal/modules/tracking/port/in"
	trackingusecase "studyplan/internal/modules/tracking/usecase"
	"studyplan/internal/platform/clock"
	"studyplan/internal/platform/config"
	"studyplan/internal/platform/id"
	uiapp "studyplan/internal/ui/app"
)

type App struct {
	PlannerCLI    plannerinadapter.CLIHandler
	QuickTrackCLI quicktrackinadapter.CLIHandler
	FocusTUI      focusinadapter.TUIHandler
	Tracking      trackingin.Usecase
	NotifyCLI     notifyinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	plannerProjector, err := planneroutadapter.NewSQLiteProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new planner projector: %w", err)
	}
	plannerSvc := plannerservice.NewPlannerService(
		planneroutadapter.NewHTTPAPI(cfg.APIBaseURL, cfg.RequestTimeout),
		plannerProjector,
	)
	plannerUC := plannerusecase.NewInteractor(plannerSvc)

	quicktrackUC := quicktrackusecase.NewInteractor(quicktrackservice.NewQuickTrackService(
		clk,
		quicktrackoutadapter.NewFileTimerStore(cfg.HomePath),
	))

	focusUC := focususecase.NewInteractor(
		focusservice.NewFocusService(clk, cfg.PomodoroBreak, cfg.PomodoroRounds),
		plannerUC,
		quicktrackUC,
		focusoutadapter.NewFileLogStore(cfg.HomePath),
		clk,
		ids,
	)

	trackingUC := trackingusecase.NewInteractor(focusUC, quicktrackUC)

	var notifier notifyout.Notifier
	if cfg.NotifierPluginPath != "" {
		notifier = notifyoutadapter.NewPluginNotifier(cfg.NotifierPluginPath)
	} else {
		notifier = notifyoutadapter.NewExecNotifier()
	}
	notifySvc := notifyservice.NewNotifyService(
		clk,
		plannerUC,
		notifier,
		notifyoutadapter.NewFileLeaseStore(cfg.HomePath),
		notifyoutadapter.NewMemoryNotifiedStore(),
		leaseHolder(),
		cfg.NotifyLeadTime,
		cfg.NotifyLeaseTTL,
	)
	notifyUC := notifyusecase.NewInteractor(
		notifySvc,
		notifier,
		notifyoutadapter.NewFileSettingsStore(cfg.HomePath),
		cfg.NotifyPollInterval,
	)

	return &App{
		PlannerCLI:    plannerinadapter.NewCLIHandler(plannerUC),
		QuickTrackCLI: quicktrackinadapter.NewCLIHandler(quicktrackUC),
		FocusTUI:      focusinadapter.NewTUIHandler(focusUC),
		Tracking:      trackingUC,
		NotifyCLI:     notifyinadapter.NewCLIHandler(notifyUC),
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	// The notification scheduler runs for the lifetime of the TUI; the
	// enabled flag and the lease decide whether any pass does real work.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = app.NotifyCLI.Run(ctx) }()

	model := uiapp.NewModel(app.PlannerCLI, app.QuickTrackCLI, app.FocusTUI, app.Tracking)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// leaseHolder identifies this process for the notifier lease.
func leaseHolder() string {
	host, err := os.Hostname()
	if err != nil {
		host = "studyplan"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/taskforge/internal/cli"
	"github.com/alexanderramin/taskforge/internal/config"
	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/notify"
	"github.com/alexanderramin/taskforge/internal/service"
	"github.com/alexanderramin/taskforge/internal/telemetry"
	"github.com/alexanderramin/taskforge/internal/validation"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Options{ConfigFile: os.Getenv("TASKFORGE_CONFIG")})
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	database, err := db.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewUnitOfWork(database)
	v := validation.New()

	metrics := telemetry.NewMetrics()
	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger), metrics}
	if cfg.RollbarToken != "" {
		rb := telemetry.NewRollbarObserver(cfg.RollbarToken, cfg.Env, version)
		defer rb.Flush()
		observers = append(observers, rb)
	}
	if cfg.UseCaseLog != "" {
		f, err := os.OpenFile(cfg.UseCaseLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening use case log: %w", err)
		}
		defer f.Close()
		observers = append(observers, service.NewLogUseCaseObserver(f))
	}

	users := service.NewUserService(uow, v, observers...)
	notifier, err := newNotifier(cfg, users)
	if err != nil {
		return err
	}

	app := &cli.App{
		Templates:     service.NewTemplateService(uow, v, observers...),
		Generation:    service.NewGenerationService(uow, notifier, logger, observers...),
		Import:        service.NewImportService(uow, v, observers...),
		Projects:      service.NewProjectService(uow),
		Teams:         service.NewTeamService(uow, observers...),
		Users:         users,
		DefaultUserID: cfg.UserID,
	}

	// Detect interactive terminal for variable prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	runErr := cli.NewRootCmd(app).Execute()

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("metrics export failed", slog.String("path", cfg.MetricsTextfile), slog.Any("error", err))
		}
	}
	return runErr
}

func newNotifier(cfg *config.Config, users notify.UserLookup) (notify.Notifier, error) {
	switch cfg.Notify {
	case "sendgrid":
		sg, err := notify.NewSendGrid(cfg.SendGridAPIKey, cfg.AppName, cfg.FromEmail, users)
		if err != nil {
			return nil, fmt.Errorf("configuring sendgrid: %w", err)
		}
		return sg, nil
	case "console":
		return notify.NewConsole(os.Stderr), nil
	default:
		return notify.Noop{}, nil
	}
}

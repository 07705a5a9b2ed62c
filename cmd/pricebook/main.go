package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pricebook/internal/cli"
	"github.com/alexanderramin/pricebook/internal/config"
	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/alexanderramin/pricebook/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	personRepo := repository.NewSQLitePersonRepo(database)
	pricingRepo := repository.NewSQLitePricingRepo(database)
	trackedRepo := repository.NewSQLiteTrackedProjectRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr so command output stays pipeable.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	pricing := service.NewPricingService(cfg.Pricing,
		service.WithPricingRepo(pricingRepo),
		service.WithProjectLookup(projectRepo),
		service.WithPricingObserver(observer),
	)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, uow, pricing, observer),
		People:   service.NewPersonService(personRepo),
		Pricing:  pricing,
		Revenue:  service.NewRevenueService(trackedRepo, assignmentRepo, projectRepo, personRepo, cfg.HoursPerDay, observer),
	}

	// Only prompt before deletes on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

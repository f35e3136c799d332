package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dealgraph.app/insight/common/logger"
	"dealgraph.app/insight/core/config"
	"dealgraph.app/insight/core/db"
	"dealgraph.app/insight/internal/backend"
	"dealgraph.app/insight/internal/graph"
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/service"
	"dealgraph.app/insight/internal/store"
	"dealgraph.app/insight/internal/timeline"
)

var catalogPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "insight",
		Short: "Coverage and negotiation-timeline reports from the knowledge base",
	}

	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "override catalog file path")

	rootCmd.AddCommand(coverageCmd())
	rootCmd.AddCommand(timelineCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func coverageCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Print the use-case coverage report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			catalog, cleanup, err := catalogStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := service.NewCoverageService(catalog)

			report, err := svc.Report(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Use cases: %d   Emails: %d\n\n", report.Stats.TotalRecords, report.Stats.TotalEmails)
			printBucket(report, "Covered", model.CoverageStatusCovered)
			printBucket(report, "Partial", model.CoverageStatusPartial)
			printBucket(report, "Not covered", model.CoverageStatusNotCovered)
			fmt.Printf("\nRemainder (not covered by volume): %d emails\n", report.Remainder)

			if status == "" {
				return nil
			}

			records, err := svc.Records(ctx, status)
			if err != nil {
				return err
			}
			fmt.Printf("\nRecords (%s):\n", status)
			for _, rec := range records {
				fmt.Printf("  %-24s %-12s %3d emails\n", rec.ID, rec.Status, rec.EmailCount)
				for _, gap := range rec.WhatsGap {
					fmt.Printf("    gap: %s\n", gap)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "records", "", "also list records for a status (all, covered, partial, not_covered)")
	return cmd
}

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline [project]",
		Short: "Fetch and print a project's negotiation timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			source, cleanup, err := timelineSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			tl, err := timeline.NewAssembler(source).FetchTimeline(ctx, project)
			if err != nil {
				if errors.Is(err, timeline.ErrProjectNotFound) {
					fmt.Printf("Project %q not found in the knowledge base.\n", project)
					return nil
				}
				return err
			}

			fmt.Printf("Project: %s", tl.Project)
			if tl.Customer != "" {
				fmt.Printf("   Customer: %s", tl.Customer)
			}
			fmt.Println()

			for _, ev := range tl.Events {
				fmt.Printf("\n[%d] %s", ev.Step, ev.Date)
				if ev.Time != "" {
					fmt.Printf(" %s", ev.Time)
				}
				fmt.Printf("  %s\n", ev.Sender)
				fmt.Printf("    %s\n", ev.Summary)
				if node := ev.LogicNode; node != nil {
					fmt.Printf("    %s (%s): %s\n", node.NodeType, node.Category, node.Description)
					if node.Citation != "" {
						fmt.Printf("    > %q\n", node.Citation)
					}
				}
			}
			return nil
		},
	}
}

func printBucket(report *service.CoverageReport, label string, status model.CoverageStatus) {
	fmt.Printf("%-12s %3d use cases  %4d emails  %5.1f%%\n",
		label,
		report.Stats.RecordCounts[status],
		report.Stats.EmailCounts[status],
		report.Percentages[status]*100,
	)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	logger.Setup(cfg)
	if catalogPath != "" {
		cfg.Catalog.Source = config.CatalogSourceFile
		cfg.Catalog.Path = catalogPath
	}
	return cfg, nil
}

func catalogStore(ctx context.Context, cfg config.Config) (store.CatalogStore, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		return store.NewPostgresCatalog(database.Pool()), database.Close, nil
	case config.CatalogSourceGraph:
		client, err := graphClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		return store.NewFileCatalog(cfg.Catalog.Path), noop, nil
	}
}

func timelineSource(ctx context.Context, cfg config.Config) (timeline.Source, func(), error) {
	noop := func() {}

	if cfg.ArangoDB.Enabled() {
		client, err := graphClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, noop, err
	}
	return client, noop, nil
}

func graphClient(ctx context.Context, cfg config.Config) (*graph.Client, error) {
	return graph.New(ctx, graph.Config{
		URL:      cfg.ArangoDB.URL,
		Username: cfg.ArangoDB.Username,
		Password: cfg.ArangoDB.Password,
		Database: cfg.ArangoDB.Database,
	})
}

package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/success-cli/internal/config"
	"github.com/sells-group/success-cli/internal/ingest"
	"github.com/sells-group/success-cli/internal/linker"
	"github.com/sells-group/success-cli/internal/metrics"
	"github.com/sells-group/success-cli/internal/model"
	"github.com/sells-group/success-cli/internal/report"
)

// loadStore reads the three exports, runs repeat detection, and links them.
func loadStore(data config.DataConfig) (*linker.Store, error) {
	opportunities, err := ingest.LoadOpportunities(data.OpportunitiesPath)
	if err != nil {
		return nil, err
	}

	deployments, err := ingest.LoadDeployments(data.DeploymentsPath)
	if err != nil {
		return nil, err
	}

	cases, err := ingest.LoadSupportCases(data.CasesPath)
	if err != nil {
		return nil, err
	}

	linker.DetectRepeats(cases)

	return linker.Link(opportunities, deployments, cases), nil
}

// computeReport runs the four aggregators concurrently over the immutable
// store and assembles the report.
func computeReport(ctx context.Context, store *linker.Store) (*report.Report, error) {
	var (
		accounts map[string]metrics.AccountMetrics
		products map[string]metrics.ProductMetrics
		useCases map[model.UseCaseCategory]metrics.UseCaseMetrics
		service  metrics.ServiceComparison
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts = metrics.CalculateAllAccounts(store)
		return nil
	})
	g.Go(func() error {
		products = metrics.CalculateAllProducts(store)
		return nil
	})
	g.Go(func() error {
		useCases = metrics.CalculateAllUseCases(store)
		return nil
	})
	g.Go(func() error {
		service = metrics.CompareServiceVsSelf(store)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report.New(store.Summary, accounts, products, useCases, service), nil
}

// Package report assembles a linking run and its metrics into a single
// document and renders it as JSON, YAML, or CSV comparison tables.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/success-cli/internal/metrics"
	"github.com/sells-group/success-cli/internal/model"
)

// Report is the full output of one run: the linking summary plus the four
// metric dimensions, stamped with a run id.
type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Summary model.LinkSummary `json:"summary" yaml:"summary"`

	Accounts map[string]metrics.AccountMetrics                `json:"accounts" yaml:"accounts"`
	Products map[string]metrics.ProductMetrics                `json:"products" yaml:"products"`
	UseCases map[model.UseCaseCategory]metrics.UseCaseMetrics `json:"use_cases" yaml:"use_cases"`
	Service  metrics.ServiceComparison                        `json:"service" yaml:"service"`
}

// New stamps the assembled metrics with a fresh run id.
func New(
	summary model.LinkSummary,
	accounts map[string]metrics.AccountMetrics,
	products map[string]metrics.ProductMetrics,
	useCases map[model.UseCaseCategory]metrics.UseCaseMetrics,
	service metrics.ServiceComparison,
) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Accounts:    accounts,
		Products:    products,
		UseCases:    useCases,
		Service:     service,
	}
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

// WriteYAML renders the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: encode yaml")
	}
	return nil
}

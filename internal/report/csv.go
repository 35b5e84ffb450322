package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currency = message.NewPrinter(language.English)

var accountHeader = []string{
	"Account", "Total Spend", "Orders", "Deployments", "Deploy Success %",
	"Support Cases", "Open Cases", "Avg Frustration", "S1 Cases",
	"Escalations", "Health Score", "Churn Risk",
}

var productHeader = []string{
	"Product", "Units Sold", "Revenue", "Units Deployed", "Deploy Success %",
	"Support Cases", "Support Intensity", "Avg Frustration",
	"Hardware Failures", "S1 Cases", "Repeat Rate %", "Journey Health",
	"High Risk Orders",
}

// WriteAccountCSV renders the account comparison table, riskiest accounts
// first.
func (r *Report) WriteAccountCSV(w io.Writer) error {
	names := make([]string, 0, len(r.Accounts))
	for name := range r.Accounts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.Accounts[names[i]], r.Accounts[names[j]]
		if a.ChurnRisk.Rank() != b.ChurnRisk.Rank() {
			return a.ChurnRisk.Rank() > b.ChurnRisk.Rank()
		}
		return names[i] < names[j]
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(accountHeader); err != nil {
		return eris.Wrap(err, "report: write account csv header")
	}

	for _, name := range names {
		m := r.Accounts[name]
		row := []string{
			name,
			currency.Sprintf("$%.0f", m.TotalSpend),
			fmt.Sprintf("%d", m.TotalOrders),
			fmt.Sprintf("%d", m.TotalDeployments),
			fmt.Sprintf("%.1f%%", m.DeploymentSuccessRate),
			fmt.Sprintf("%d", m.TotalSupportCases),
			fmt.Sprintf("%d", m.OpenCases),
			fmt.Sprintf("%.1f", m.AvgFrustrationScore),
			fmt.Sprintf("%d", m.S1Cases),
			fmt.Sprintf("%d", m.EscalationCount),
			fmt.Sprintf("%.0f", m.AccountHealthScore),
			string(m.ChurnRisk),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "report: write account row %s", name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush account csv")
}

// WriteProductCSV renders the product comparison table sorted by series name.
func (r *Report) WriteProductCSV(w io.Writer) error {
	names := make([]string, 0, len(r.Products))
	for name := range r.Products {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write(productHeader); err != nil {
		return eris.Wrap(err, "report: write product csv header")
	}

	for _, name := range names {
		m := r.Products[name]
		row := []string{
			name,
			fmt.Sprintf("%d", m.UnitsSold),
			currency.Sprintf("$%.0f", m.TotalRevenue),
			fmt.Sprintf("%d", m.UnitsDeployed),
			fmt.Sprintf("%.1f%%", m.DeploymentSuccessRate),
			fmt.Sprintf("%d", m.TotalSupportCases),
			fmt.Sprintf("%.2f", m.SupportIntensity),
			fmt.Sprintf("%.1f", m.AvgFrustrationScore),
			fmt.Sprintf("%d", m.HardwareFailureCount),
			fmt.Sprintf("%d", m.S1CaseCount),
			fmt.Sprintf("%.1f%%", m.RepeatIssueRate),
			fmt.Sprintf("%.0f", m.AvgJourneyHealth),
			fmt.Sprintf("%d", m.HighChurnRiskCount),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "report: write product row %s", name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush product csv")
}

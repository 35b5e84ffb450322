package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/model"
)

// serviceOwnerKeywords flag a case owner as Professional Services staff.
var serviceOwnerKeywords = []string{
	"professional services", "ps ", "deploy", "install", "implementation",
}

// servicePhrases flag message text as describing a service-led install.
var servicePhrases = []string{
	"on-site", "onsite",
	"installation complete",
	"deployment engineer",
	"ps engineer",
	"implementation specialist",
	"service team",
	"professional services",
}

// detectServiceDeploy reports whether a deployment was performed by the
// service team rather than the customer, from owner and message heuristics.
func detectServiceDeploy(messages []string, caseOwner string) bool {
	owner := strings.ToLower(caseOwner)
	for _, kw := range serviceOwnerKeywords {
		if strings.Contains(owner, kw) {
			return true
		}
	}

	text := strings.ToLower(strings.Join(messages, " "))
	for _, phrase := range servicePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// LoadDeployments reads a deployment-case export. Each export row is one
// message; rows are grouped by case number with messages aggregated.
func LoadDeployments(path string) ([]*model.Deployment, error) {
	rows, err := ReadXLSX(path, XLSXOptions{})
	if err != nil {
		return nil, err
	}
	deployments, err := parseDeployments(rows)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse deployments from %s", path)
	}
	return deployments, nil
}

func parseDeployments(rows [][]string) ([]*model.Deployment, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: deployment export is empty")
	}

	idx := resolveColumns(sharedCaseColumns, rows[0])
	if !idx.has("case_number") {
		return nil, eris.Errorf("ingest: case number column not found, headers: %v", rows[0])
	}

	groups := groupByCase(idx, rows[1:])

	var deployments []*model.Deployment
	skipped := 0

	for _, group := range groups {
		first := group.rows[0]

		orderNumber := idx.get(first, "order_number")
		if orderNumber == "" {
			skipped++
			continue
		}

		messages, fromAddresses := collectMessages(idx, group.rows)
		caseOwner := idx.get(first, "case_owner")

		account := idx.get(first, "account_name")
		if account == "" {
			account = "Unknown"
		}

		deployments = append(deployments, &model.Deployment{
			CaseNumber:      group.caseNumber,
			OrderNumber:     orderNumber,
			AccountName:     account,
			SerialNumber:    idx.get(first, "serial_number"),
			CaseOwner:       caseOwner,
			CaseAgeDays:     parseInt(idx.get(first, "case_age_days")),
			MessageDate:     parseDate(idx.get(first, "message_date")),
			Severity:        model.ParseSeverity(idx.get(first, "severity")),
			CaseReason:      idx.get(first, "case_reason"),
			Status:          idx.get(first, "status"),
			ProductSeries:   model.ParseProductSeries(idx.get(first, "product_series")),
			ProductModel:    idx.get(first, "product_model"),
			SupportLevel:    model.ParseSupportLevel(idx.get(first, "support_level")),
			Messages:        messages,
			FromAddresses:   fromAddresses,
			IsServiceDeploy: detectServiceDeploy(messages, caseOwner),
		})
	}

	zap.L().Info("ingest: deployments parsed",
		zap.Int("deployments", len(deployments)),
		zap.Int("skipped_no_order", skipped),
	)

	return deployments, nil
}

// caseGroup keeps a case's rows together in first-seen order.
type caseGroup struct {
	caseNumber string
	rows       [][]string
}

func groupByCase(idx *columnIndex, rows [][]string) []*caseGroup {
	byCase := make(map[string]*caseGroup)
	var ordered []*caseGroup

	for _, row := range rows {
		caseNumber := idx.get(row, "case_number")
		if caseNumber == "" {
			continue
		}
		group, ok := byCase[caseNumber]
		if !ok {
			group = &caseGroup{caseNumber: caseNumber}
			byCase[caseNumber] = group
			ordered = append(ordered, group)
		}
		group.rows = append(group.rows, row)
	}
	return ordered
}

// collectMessages aggregates the non-empty message bodies and the unique
// sender addresses of a case's rows, preserving first-seen order.
func collectMessages(idx *columnIndex, rows [][]string) (messages, fromAddresses []string) {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if msg := idx.get(row, "text_body"); msg != "" {
			messages = append(messages, msg)
		}
		addr := idx.get(row, "from_address")
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		fromAddresses = append(fromAddresses, addr)
	}
	return messages, fromAddresses
}

package ingest

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/model"
)

// LoadSupportCases reads a support-case export. Rows are grouped by case
// number with messages aggregated; the created date falls back to the
// earliest message date. Repeat-issue detection is the caller's job.
func LoadSupportCases(path string) ([]*model.SupportCase, error) {
	rows, err := ReadXLSX(path, XLSXOptions{})
	if err != nil {
		return nil, err
	}
	cases, err := parseSupportCases(rows)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse support cases from %s", path)
	}
	return cases, nil
}

func parseSupportCases(rows [][]string) ([]*model.SupportCase, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: support case export is empty")
	}

	idx := resolveColumns(sharedCaseColumns, rows[0])
	if !idx.has("case_number") {
		return nil, eris.Errorf("ingest: case number column not found, headers: %v", rows[0])
	}

	groups := groupByCase(idx, rows[1:])

	var cases []*model.SupportCase
	skipped := 0

	for _, group := range groups {
		first := group.rows[0]

		orderNumber := idx.get(first, "order_number")
		if orderNumber == "" {
			skipped++
			continue
		}

		messages, fromAddresses := collectMessages(idx, group.rows)
		earliest, latest := messageDateRange(idx, group.rows)

		createdDate := earliest
		if createdDate == nil {
			createdDate = parseDate(idx.get(first, "created_date"))
		}
		messageDate := latest
		if messageDate == nil {
			messageDate = parseDate(idx.get(first, "message_date"))
		}

		account := idx.get(first, "account_name")
		if account == "" {
			account = "Unknown"
		}

		cases = append(cases, &model.SupportCase{
			CaseNumber:    group.caseNumber,
			OrderNumber:   orderNumber,
			AccountName:   account,
			SerialNumber:  idx.get(first, "serial_number"),
			CaseOwner:     idx.get(first, "case_owner"),
			CaseAgeDays:   parseInt(idx.get(first, "case_age_days")),
			MessageDate:   messageDate,
			CreatedDate:   createdDate,
			Severity:      model.ParseSeverity(idx.get(first, "severity")),
			CaseReason:    idx.get(first, "case_reason"),
			Status:        idx.get(first, "status"),
			ProductSeries: model.ParseProductSeries(idx.get(first, "product_series")),
			ProductModel:  idx.get(first, "product_model"),
			SupportLevel:  model.ParseSupportLevel(idx.get(first, "support_level")),
			Messages:      messages,
			FromAddresses: fromAddresses,
		})
	}

	zap.L().Info("ingest: support cases parsed",
		zap.Int("cases", len(cases)),
		zap.Int("skipped_no_order", skipped),
	)

	return cases, nil
}

func messageDateRange(idx *columnIndex, rows [][]string) (earliest, latest *time.Time) {
	for _, row := range rows {
		d := parseDate(idx.get(row, "message_date"))
		if d == nil {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = d
		}
		if latest == nil || d.After(*latest) {
			latest = d
		}
	}
	return earliest, latest
}

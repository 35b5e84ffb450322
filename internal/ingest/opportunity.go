package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/model"
)

// seriesTokens are explicit model identifiers that pin a product name to a
// series before the leading-letter fallback runs.
var seriesTokens = []struct {
	series model.ProductSeries
	tokens []string
}{
	{model.SeriesF, []string{"F-SERIES", "FSERIES", "F100", "F60", "F130"}},
	{model.SeriesM, []string{"M-SERIES", "MSERIES", "M40", "M50", "M60"}},
	{model.SeriesH, []string{"H-SERIES", "HSERIES", "H10", "H20"}},
	{model.SeriesR, []string{"R-SERIES", "RSERIES", "R10", "R20", "R30", "R40", "R50"}},
}

func deriveProductSeries(primaryProduct string) model.ProductSeries {
	upper := strings.ToUpper(strings.TrimSpace(primaryProduct))
	if upper == "" {
		return model.SeriesUnknown
	}
	for _, st := range seriesTokens {
		for _, tok := range st.tokens {
			if strings.Contains(upper, tok) {
				return st.series
			}
		}
	}
	return model.SeriesFromProduct(upper)
}

// LoadOpportunities reads an opportunity export. Rows without an order number
// are skipped and counted, not errors.
func LoadOpportunities(path string) ([]*model.Opportunity, error) {
	rows, err := ReadXLSX(path, XLSXOptions{})
	if err != nil {
		return nil, err
	}
	opportunities, err := parseOpportunities(rows)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse opportunities from %s", path)
	}
	return opportunities, nil
}

func parseOpportunities(rows [][]string) ([]*model.Opportunity, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: opportunity export is empty")
	}

	idx := resolveColumns(opportunityColumns, rows[0])
	if !idx.has("order_number") {
		return nil, eris.Errorf("ingest: order number column not found, headers: %v", rows[0])
	}

	var opportunities []*model.Opportunity
	skipped := 0

	for _, row := range rows[1:] {
		orderNumber := idx.get(row, "order_number")
		if orderNumber == "" {
			if !emptyRow(row) {
				skipped++
			}
			continue
		}

		primaryProduct := idx.get(row, "primary_product")

		account := idx.get(row, "account_name")
		if account == "" {
			account = "Unknown"
		}

		opportunities = append(opportunities, &model.Opportunity{
			OrderNumber:      orderNumber,
			OpportunityName:  idx.get(row, "opportunity_name"),
			AccountName:      account,
			OpportunityOwner: idx.get(row, "opportunity_owner"),
			OwnerRole:        idx.get(row, "owner_role"),
			FiscalPeriod:     idx.get(row, "fiscal_period"),
			LeadSource:       idx.get(row, "lead_source"),
			DealType:         idx.get(row, "deal_type"),
			Amount:           parseAmount(idx.get(row, "amount")),
			CloseDate:        parseDate(idx.get(row, "close_date")),
			CreatedDate:      parseDate(idx.get(row, "created_date")),
			ProductsQuoted:   idx.get(row, "products_quoted"),
			PrimaryProduct:   primaryProduct,
			SystemModel:      idx.get(row, "system_model"),
			ProductSeries:    deriveProductSeries(primaryProduct),
			BusinessNeed:     idx.get(row, "business_need"),
			PrimaryUseCase:   idx.get(row, "primary_use_case"),
			PainPoints:       idx.get(row, "pain_points"),
			NextStep:         idx.get(row, "next_step"),
		})
	}

	zap.L().Info("ingest: opportunities parsed",
		zap.Int("opportunities", len(opportunities)),
		zap.Int("skipped_no_order", skipped),
	)

	return opportunities, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

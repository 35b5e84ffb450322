package ingest

import (
	"strconv"
	"strings"
	"time"
)

// columnTable maps a logical field name to the header spellings seen across
// export variants, in match-priority order.
type columnTable map[string][]string

// sharedCaseColumns covers the fields common to deployment and support case
// exports.
var sharedCaseColumns = columnTable{
	"case_number":    {"case number", "casenumber", "case_number", "case #", "case"},
	"order_number":   {"order number", "ordernumber", "order_number", "order #", "order"},
	"account_name":   {"account name", "accountname", "account_name", "customer", "customer name"},
	"case_owner":     {"case owner", "caseowner", "case_owner", "owner", "assigned to"},
	"case_age_days":  {"case age days", "caseagedays", "case_age_days", "age days", "case age"},
	"severity":       {"severity", "priority", "level", "sev"},
	"text_body":      {"text body", "textbody", "text_body", "message", "body", "description"},
	"from_address":   {"from address", "fromaddress", "from_address", "from", "sender", "email"},
	"product_series": {"product series", "productseries", "product_series", "series"},
	"case_reason":    {"case reason", "casereason", "case_reason", "reason", "category"},
	"product_model":  {"product model", "productmodel", "product_model", "model"},
	"support_level":  {"support level", "supportlevel", "support_level", "tier", "support tier"},
	"message_date":   {"message date", "messagedate", "message_date", "date", "timestamp"},
	"status":         {"status", "state", "case status"},
	"serial_number":  {"serial number", "serialnumber", "serial_number", "serial", "asset serial"},
	"created_date":   {"created date", "createddate", "created_date", "date created"},
}

var opportunityColumns = columnTable{
	"order_number":      {"order number", "ordernumber", "order_number", "order #", "order"},
	"opportunity_name":  {"opportunity name", "opportunityname", "opportunity_name", "opp name"},
	"account_name":      {"account name", "accountname", "account_name", "customer", "customer name"},
	"opportunity_owner": {"opportunity owner", "opportunityowner", "opportunity_owner", "owner", "opp owner"},
	"owner_role":        {"owner role", "ownerrole", "owner_role", "role"},
	"fiscal_period":     {"fiscal period", "fiscalperiod", "fiscal_period", "quarter", "period"},
	"lead_source":       {"lead source", "leadsource", "lead_source", "source"},
	"deal_type":         {"type", "deal type", "dealtype", "deal_type", "opportunity type"},
	"amount":            {"amount", "deal value", "value", "price", "total"},
	"close_date":        {"close date", "closedate", "close_date", "closed date", "won date"},
	"created_date":      {"created date", "createddate", "created_date", "create date"},
	"products_quoted":   {"products quoted", "productsquoted", "products_quoted", "products"},
	"primary_product":   {"primary product", "primaryproduct", "primary_product", "main product"},
	"system_model":      {"system model", "systemmodel", "system_model", "model"},
	"business_need":     {"business need", "businessneed", "business_need", "need"},
	"primary_use_case":  {"primary use case", "primaryusecase", "primary_use_case", "use case", "usecase"},
	"pain_points":       {"pain points", "painpoints", "pain_points", "challenges"},
	"next_step":         {"next step", "nextstep", "next_step", "next steps"},
}

// columnIndex resolves a header row against a columnTable once, so per-row
// lookups are map hits.
type columnIndex struct {
	fields map[string]int
}

// resolveColumns matches each logical field to a header position: an exact
// lowercase match wins, then the first header containing the candidate as a
// substring. Unmatched fields are simply absent.
func resolveColumns(table columnTable, header []string) *columnIndex {
	lower := make([]string, len(header))
	exact := make(map[string]int, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
		if _, ok := exact[lower[i]]; !ok {
			exact[lower[i]] = i
		}
	}

	idx := &columnIndex{fields: make(map[string]int, len(table))}

	for field, candidates := range table {
		if pos, ok := matchColumn(candidates, lower, exact); ok {
			idx.fields[field] = pos
		}
	}
	return idx
}

func matchColumn(candidates, lower []string, exact map[string]int) (int, bool) {
	for _, cand := range candidates {
		if pos, ok := exact[cand]; ok {
			return pos, true
		}
	}
	for _, cand := range candidates {
		for i, col := range lower {
			if col != "" && strings.Contains(col, cand) {
				return i, true
			}
		}
	}
	return 0, false
}

// get returns the trimmed cell value of a field in a row, or "".
func (idx *columnIndex) get(row []string, field string) string {
	pos, ok := idx.fields[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func (idx *columnIndex) has(field string) bool {
	_, ok := idx.fields[field]
	return ok
}

// parseAmount parses a currency value, tolerating "$" and thousands
// separators.
func parseAmount(raw string) float64 {
	s := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	// Spreadsheets often render integers as floats.
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

// dateLayouts covers the formats seen across the exports.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"Jan 2, 2006",
	"2-Jan-06",
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

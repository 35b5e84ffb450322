package linker

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/model"
)

// repeatWindow is the maximum gap between two cases for reason-based repeat
// detection.
const repeatWindow = 90 * 24 * time.Hour

// reasonKeywords is the fixed vocabulary used to decide whether two case
// reasons describe the same kind of issue.
var reasonKeywords = []string{
	"performance", "network", "disk", "pool", "replication",
	"upgrade", "ha", "failover", "snapshot", "share", "smb", "nfs",
}

// caseRefPatterns match references to earlier cases inside message text.
// Case numbers are 5-8 digit identifiers.
var caseRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`case\s*#?\s*(\d{5,8})`),
	regexp.MustCompile(`ticket\s*#?\s*(\d{5,8})`),
	regexp.MustCompile(`previous\s+case\s+(\d{5,8})`),
	regexp.MustCompile(`related\s+to\s+(\d{5,8})`),
}

// DetectRepeats flags support cases that are continuations of earlier cases,
// setting IsRepeatIssue and RepeatOfCase in place. It must run to completion
// before the cases are handed to Link.
//
// Two passes: first, cases sharing an account and serial number are compared
// by case reason within a 90-day window; second, still-unmarked cases are
// scanned for message references to other known case numbers. This is a
// heuristic: false positives and negatives are expected and acceptable.
func DetectRepeats(cases []*model.SupportCase) {
	detectBySerialGroup(cases)
	detectByMessageReference(cases)

	repeats := 0
	for _, c := range cases {
		if c.IsRepeatIssue {
			repeats++
		}
	}
	if repeats > 0 {
		zap.L().Info("linker: repeat issues detected",
			zap.Int("repeats", repeats),
			zap.Int("cases", len(cases)),
		)
	}
}

func detectBySerialGroup(cases []*model.SupportCase) {
	groups := make(map[string][]*model.SupportCase)
	for _, c := range cases {
		if c.SerialNumber == "" {
			continue
		}
		key := c.AccountName + "|" + c.SerialNumber
		groups[key] = append(groups[key], c)
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return createdOrZero(group[i]).Before(createdOrZero(group[j]))
		})

		for i, current := range group {
			// Earliest qualifying match wins.
			for _, prev := range group[:i] {
				if !similarCaseReason(current.CaseReason, prev.CaseReason) {
					continue
				}
				if current.CreatedDate != nil && prev.CreatedDate != nil &&
					current.CreatedDate.Sub(*prev.CreatedDate) > repeatWindow {
					continue
				}
				current.IsRepeatIssue = true
				current.RepeatOfCase = prev.CaseNumber
				break
			}
		}
	}
}

func detectByMessageReference(cases []*model.SupportCase) {
	known := make(map[string]struct{}, len(cases))
	for _, c := range cases {
		known[c.CaseNumber] = struct{}{}
	}

	for _, c := range cases {
		if c.IsRepeatIssue {
			continue
		}

		text := strings.ToLower(strings.Join(c.Messages, " "))
		if text == "" {
			continue
		}

		for _, pattern := range caseRefPatterns {
			for _, match := range pattern.FindAllStringSubmatch(text, -1) {
				ref := strings.TrimSpace(match[1])
				if ref == c.CaseNumber {
					continue
				}
				if _, ok := known[ref]; ok {
					c.IsRepeatIssue = true
					c.RepeatOfCase = ref
					break
				}
			}
			if c.IsRepeatIssue {
				break
			}
		}
	}
}

// similarCaseReason reports whether two case reasons describe the same kind
// of issue: an exact match, or at least one shared vocabulary keyword.
func similarCaseReason(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ra := strings.ToLower(strings.TrimSpace(a))
	rb := strings.ToLower(strings.TrimSpace(b))
	if ra == rb {
		return true
	}
	for _, kw := range reasonKeywords {
		if strings.Contains(ra, kw) && strings.Contains(rb, kw) {
			return true
		}
	}
	return false
}

func createdOrZero(c *model.SupportCase) time.Time {
	if c.CreatedDate == nil {
		return time.Time{}
	}
	return *c.CreatedDate
}

package linker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/success-cli/internal/model"
)

func caseWithSerial(num, account, serial, reason string, created time.Time) *model.SupportCase {
	return &model.SupportCase{
		CaseNumber:   num,
		AccountName:  account,
		SerialNumber: serial,
		CaseReason:   reason,
		CreatedDate:  &created,
	}
}

func TestDetectRepeatsBySerialGroup(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	first := caseWithSerial("70001", "Acme", "SN-100", "Replication failure", base)
	second := caseWithSerial("70002", "Acme", "SN-100", "Replication performance issue", base.AddDate(0, 0, 10))
	unrelated := caseWithSerial("70003", "Acme", "SN-100", "License question", base.AddDate(0, 0, 12))

	DetectRepeats([]*model.SupportCase{second, first, unrelated})

	assert.False(t, first.IsRepeatIssue)
	require.True(t, second.IsRepeatIssue)
	assert.Equal(t, "70001", second.RepeatOfCase)
	assert.False(t, unrelated.IsRepeatIssue)
}

func TestDetectRepeatsWindowExpired(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := caseWithSerial("70001", "Acme", "SN-100", "Disk failure", base)
	late := caseWithSerial("70002", "Acme", "SN-100", "Disk failure", base.AddDate(0, 0, 120))

	DetectRepeats([]*model.SupportCase{first, late})

	assert.False(t, late.IsRepeatIssue)
}

func TestDetectRepeatsMissingDatesStillMatch(t *testing.T) {
	first := &model.SupportCase{
		CaseNumber: "70001", AccountName: "Acme", SerialNumber: "SN-9", CaseReason: "Snapshot corruption",
	}
	second := &model.SupportCase{
		CaseNumber: "70002", AccountName: "Acme", SerialNumber: "SN-9", CaseReason: "Snapshot schedule broken",
	}

	DetectRepeats([]*model.SupportCase{first, second})

	assert.True(t, first.IsRepeatIssue || second.IsRepeatIssue)
}

func TestDetectRepeatsDifferentSerialOrAccount(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    *model.SupportCase
		b    *model.SupportCase
	}{
		{
			"different serials",
			caseWithSerial("70001", "Acme", "SN-1", "Disk failure", base),
			caseWithSerial("70002", "Acme", "SN-2", "Disk failure", base.AddDate(0, 0, 5)),
		},
		{
			"different accounts",
			caseWithSerial("70003", "Acme", "SN-1", "Disk failure", base),
			caseWithSerial("70004", "Globex", "SN-1", "Disk failure", base.AddDate(0, 0, 5)),
		},
		{
			"blank serials skipped",
			caseWithSerial("70005", "Acme", "", "Disk failure", base),
			caseWithSerial("70006", "Acme", "", "Disk failure", base.AddDate(0, 0, 5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			DetectRepeats([]*model.SupportCase{tt.a, tt.b})
			assert.False(t, tt.a.IsRepeatIssue)
			assert.False(t, tt.b.IsRepeatIssue)
		})
	}
}

func TestDetectRepeatsByMessageReference(t *testing.T) {
	earlier := &model.SupportCase{CaseNumber: "70001", AccountName: "Acme"}
	follower := &model.SupportCase{
		CaseNumber:  "70002",
		AccountName: "Acme",
		Messages:    []string{"This looks like the same problem as case #70001 from last month."},
	}
	selfRef := &model.SupportCase{
		CaseNumber:  "70003",
		AccountName: "Acme",
		Messages:    []string{"Re: ticket 70003 update"},
	}
	unknownRef := &model.SupportCase{
		CaseNumber:  "70004",
		AccountName: "Acme",
		Messages:    []string{"related to 99999 which we never opened here"},
	}

	DetectRepeats([]*model.SupportCase{earlier, follower, selfRef, unknownRef})

	require.True(t, follower.IsRepeatIssue)
	assert.Equal(t, "70001", follower.RepeatOfCase)
	assert.False(t, selfRef.IsRepeatIssue)
	assert.False(t, unknownRef.IsRepeatIssue)
}

func TestSimilarCaseReason(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"exact match", "Disk failure", "disk failure", true},
		{"shared keyword", "Replication failure", "Replication performance issue", true},
		{"no overlap", "License question", "Disk failure", false},
		{"empty reason", "", "Disk failure", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarCaseReason(tt.a, tt.b))
		})
	}
}

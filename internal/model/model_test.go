package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFullyLinkedAllCombinations(t *testing.T) {
	tests := []struct {
		name        string
		opportunity bool
		deployments bool
		cases       bool
		want        bool
	}{
		{"none", false, false, false, false},
		{"opportunity only", true, false, false, false},
		{"deployments only", false, true, false, false},
		{"cases only", false, false, true, false},
		{"opportunity and deployments", true, true, false, false},
		{"opportunity and cases", true, false, true, false},
		{"deployments and cases", false, true, true, false},
		{"all three", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &LinkedOrder{}
			if tt.opportunity {
				order.Opportunity = &Opportunity{}
			}
			if tt.deployments {
				order.Deployments = []*Deployment{{}}
			}
			if tt.cases {
				order.SupportCases = []*SupportCase{{}}
			}

			assert.Equal(t, tt.opportunity, order.HasOpportunity())
			assert.Equal(t, tt.deployments, order.HasDeployments())
			assert.Equal(t, tt.cases, order.HasSupportCases())
			assert.Equal(t, tt.want, order.IsFullyLinked())
		})
	}
}

func TestLinkSummaryString(t *testing.T) {
	s := LinkSummary{
		TotalOrders:           4,
		OrdersWithOpportunity: 3,
		OrdersWithDeployment:  2,
		OrdersWithSupport:     2,
		FullyLinkedOrders:     1,
		TotalOpportunities:    3,
		TotalDeployments:      2,
		TotalCases:            3,
		OrphanCases:           1,
	}

	out := s.String()
	assert.Contains(t, out, "DATA LINKING SUMMARY")
	assert.Contains(t, out, "Total Orders: 4")
	assert.Contains(t, out, "Fully Linked (all 3): 1 (25%)")
	assert.Contains(t, out, "Support Cases: 3 (orphans: 1)")
}

func TestLinkSummaryStringZeroOrders(t *testing.T) {
	out := LinkSummary{}.String()
	assert.Contains(t, out, "Total Orders: 0")
	assert.Contains(t, out, "(0%)")
}

// Package linker correlates opportunities, deployments, and support cases
// that share an order number, producing the unified per-order view the
// metrics aggregators consume.
package linker

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/model"
)

// Store holds the result of a linking run: one LinkedOrder per unique
// normalized order key, the records that could not be keyed, and the derived
// summary counters. Immutable after construction apart from the evaluation
// fields on individual orders.
type Store struct {
	Orders []*model.LinkedOrder `json:"orders"`

	OrphanOpportunities []*model.Opportunity `json:"orphan_opportunities,omitempty"`
	OrphanDeployments   []*model.Deployment  `json:"orphan_deployments,omitempty"`
	OrphanCases         []*model.SupportCase `json:"orphan_cases,omitempty"`

	Summary model.LinkSummary `json:"summary"`

	byOrder   map[string]*model.LinkedOrder
	byAccount map[string][]*model.LinkedOrder
}

// Order returns the linked order for a normalized order key, or nil.
func (s *Store) Order(orderNumber string) *model.LinkedOrder {
	return s.byOrder[orderNumber]
}

// OrdersByAccount returns all linked orders for an account.
func (s *Store) OrdersByAccount(accountName string) []*model.LinkedOrder {
	return s.byAccount[accountName]
}

// FullyLinkedOrders returns the orders with data from all three sources.
func (s *Store) FullyLinkedOrders() []*model.LinkedOrder {
	var out []*model.LinkedOrder
	for _, o := range s.Orders {
		if o.IsFullyLinked() {
			out = append(out, o)
		}
	}
	return out
}

// Accounts returns the sorted list of unique account names.
func (s *Store) Accounts() []string {
	accounts := make([]string, 0, len(s.byAccount))
	for name := range s.byAccount {
		accounts = append(accounts, name)
	}
	sort.Strings(accounts)
	return accounts
}

// Link joins the three sources on the normalized order key.
//
// Records whose order number normalizes to the empty string are routed to the
// per-source orphan lists; a missing source for a key is not an error, it
// just leaves that component empty. Duplicate order numbers across
// opportunities resolve last-write-wins (known limitation of the upstream
// export; earlier duplicates are reported as orphans so no record is lost).
func Link(opportunities []*model.Opportunity, deployments []*model.Deployment, cases []*model.SupportCase) *Store {
	oppByOrder := make(map[string]*model.Opportunity)
	deployByOrder := make(map[string][]*model.Deployment)
	casesByOrder := make(map[string][]*model.SupportCase)

	store := &Store{}

	for _, opp := range opportunities {
		key := NormalizeOrderKey(opp.OrderNumber)
		if key == "" {
			store.OrphanOpportunities = append(store.OrphanOpportunities, opp)
			continue
		}
		if prev, ok := oppByOrder[key]; ok {
			zap.L().Warn("linker: duplicate opportunity order number, keeping latest",
				zap.String("order_number", key),
				zap.String("dropped_opportunity", prev.OpportunityName),
			)
			store.OrphanOpportunities = append(store.OrphanOpportunities, prev)
		}
		oppByOrder[key] = opp
	}

	for _, dep := range deployments {
		key := NormalizeOrderKey(dep.OrderNumber)
		if key == "" {
			store.OrphanDeployments = append(store.OrphanDeployments, dep)
			continue
		}
		deployByOrder[key] = append(deployByOrder[key], dep)
	}

	for _, c := range cases {
		key := NormalizeOrderKey(c.OrderNumber)
		if key == "" {
			store.OrphanCases = append(store.OrphanCases, c)
			continue
		}
		casesByOrder[key] = append(casesByOrder[key], c)
	}

	// Union of all keys, sorted for deterministic order construction.
	keySet := make(map[string]struct{})
	for k := range oppByOrder {
		keySet[k] = struct{}{}
	}
	for k := range deployByOrder {
		keySet[k] = struct{}{}
	}
	for k := range casesByOrder {
		keySet[k] = struct{}{}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	store.Orders = make([]*model.LinkedOrder, 0, len(keys))
	store.byOrder = make(map[string]*model.LinkedOrder, len(keys))
	store.byAccount = make(map[string][]*model.LinkedOrder)

	for _, key := range keys {
		opp := oppByOrder[key]
		deps := deployByOrder[key]
		orderCases := casesByOrder[key]

		// Account precedence: opportunity, then first deployment, then
		// first case.
		accountName := "Unknown"
		switch {
		case opp != nil:
			accountName = opp.AccountName
		case len(deps) > 0:
			accountName = deps[0].AccountName
		case len(orderCases) > 0:
			accountName = orderCases[0].AccountName
		}

		order := &model.LinkedOrder{
			OrderNumber:  key,
			AccountName:  accountName,
			Opportunity:  opp,
			Deployments:  deps,
			SupportCases: orderCases,
			ChurnRisk:    model.RiskUnknown,
		}

		store.Orders = append(store.Orders, order)
		store.byOrder[key] = order
		store.byAccount[accountName] = append(store.byAccount[accountName], order)
	}

	store.Summary = summarize(store, len(opportunities), len(deployments), len(cases))

	zap.L().Info("linker: data sources linked",
		zap.Int("orders", store.Summary.TotalOrders),
		zap.Int("fully_linked", store.Summary.FullyLinkedOrders),
		zap.Int("orphan_opportunities", store.Summary.OrphanOpportunities),
		zap.Int("orphan_deployments", store.Summary.OrphanDeployments),
		zap.Int("orphan_cases", store.Summary.OrphanCases),
	)

	return store
}

func summarize(store *Store, totalOpps, totalDeps, totalCases int) model.LinkSummary {
	summary := model.LinkSummary{
		TotalOrders:         len(store.Orders),
		OrphanOpportunities: len(store.OrphanOpportunities),
		OrphanDeployments:   len(store.OrphanDeployments),
		OrphanCases:         len(store.OrphanCases),
		TotalOpportunities:  totalOpps,
		TotalDeployments:    totalDeps,
		TotalCases:          totalCases,
	}
	for _, o := range store.Orders {
		if o.HasOpportunity() {
			summary.OrdersWithOpportunity++
		}
		if o.HasDeployments() {
			summary.OrdersWithDeployment++
		}
		if o.HasSupportCases() {
			summary.OrdersWithSupport++
		}
		if o.IsFullyLinked() {
			summary.FullyLinkedOrders++
		}
	}
	return summary
}

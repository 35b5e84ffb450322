package analysis

import (
	"fmt"
	"strings"

	"github.com/sells-group/success-cli/internal/model"
)

const (
	maxDeploymentMessages  = 20
	maxSupportMessages     = 15
	maxSupportMessageBytes = 10000
)

const messageSeparator = "\n\n---\n\n"

func deploymentPrompt(d *model.Deployment, opp *model.Opportunity) string {
	var b strings.Builder

	b.WriteString("Analyze this deployment case to assess installation success and customer experience.\n\n")
	fmt.Fprintf(&b, "DEPLOYMENT CASE DETAILS:\n")
	fmt.Fprintf(&b, "Case Number: %s\n", d.CaseNumber)
	fmt.Fprintf(&b, "Account: %s\n", d.AccountName)
	fmt.Fprintf(&b, "Product: %s (%s-Series)\n", d.ProductModel, d.ProductSeries)
	fmt.Fprintf(&b, "Case Duration: %d days\n", d.CaseAgeDays)
	fmt.Fprintf(&b, "Status: %s\n", d.Status)
	fmt.Fprintf(&b, "Severity: %s\n", d.Severity)
	fmt.Fprintf(&b, "Case Owner: %s\n", d.CaseOwner)

	if opp != nil {
		b.WriteString("\nCUSTOMER EXPECTATIONS (from Sales):\n")
		fmt.Fprintf(&b, "- Use Case: %s\n", orNotSpecified(opp.PrimaryUseCase))
		fmt.Fprintf(&b, "- Business Need: %s\n", orNotSpecified(opp.BusinessNeed))
		fmt.Fprintf(&b, "- Pain Points: %s\n", orNotSpecified(opp.PainPoints))
		fmt.Fprintf(&b, "- Products Quoted: %s\n", opp.ProductsQuoted)
	}

	b.WriteString("\nDEPLOYMENT MESSAGES:\n")
	b.WriteString(joinMessages(d.Messages, maxDeploymentMessages, 0))

	b.WriteString(`

ANALYSIS TASKS:

1. DEPLOYMENT_STATUS: Classify the deployment outcome:
   - Successful: Completed without major issues
   - Partial: Completed but with compromises or workarounds
   - Problematic: Significant issues during deployment
   - Failed: Deployment not completed or rolled back
   - In Progress: Still ongoing

2. DEPLOYMENT_SCORE: Rate 0-100 the overall deployment success:
   - 0-30: Failed or severely problematic
   - 31-50: Major issues, workarounds needed
   - 51-70: Minor issues, generally successful
   - 71-90: Smooth with minor hiccups
   - 91-100: Perfect deployment

3. IS_SERVICE_DEPLOY: Was this deployed by Professional Services team? (Yes/No)
   Look for: PS engineer, implementation specialist, service team, on-site engineer

4. INSTALLATION_ISSUES: List specific problems encountered (max 5)

5. BLOCKERS: List any showstoppers that delayed deployment (max 3)

6. SERVICE_QUALITY: If service team involved, rate their performance:
   - Professional: Excellent service, proactive communication
   - Adequate: Got the job done, no complaints
   - Needs Improvement: Delays, communication gaps, customer frustration

7. CUSTOMER_SATISFACTION: Brief assessment of customer's deployment experience
`)

	if opp != nil {
		b.WriteString(`
8. EXPECTATION_MATCH: Did deployment meet sales expectations? (Met/Partially Met/Not Met/Unknown)

9. EXPECTATION_GAPS: What expectations were not met? (max 3)
`)
	}

	b.WriteString(`
Respond in this exact format:
DEPLOYMENT_STATUS: [status]
DEPLOYMENT_SCORE: [number]
IS_SERVICE_DEPLOY: [Yes/No]
INSTALLATION_ISSUES:
- [issue 1]
- [issue 2]
BLOCKERS:
- [blocker 1]
SERVICE_QUALITY: [rating]
CUSTOMER_SATISFACTION: [brief assessment]`)

	if opp != nil {
		b.WriteString("\nEXPECTATION_MATCH: [rating]\nEXPECTATION_GAPS:\n- [gap 1]")
	}

	return b.String()
}

func supportPrompt(c *model.SupportCase, deployments []*model.Deployment) string {
	var b strings.Builder

	b.WriteString("Analyze this support case to assess field performance and customer experience.\n\n")
	fmt.Fprintf(&b, "SUPPORT CASE DETAILS:\n")
	fmt.Fprintf(&b, "Case Number: %s\n", c.CaseNumber)
	fmt.Fprintf(&b, "Account: %s\n", c.AccountName)
	fmt.Fprintf(&b, "Product: %s (%s-Series)\n", c.ProductModel, c.ProductSeries)
	fmt.Fprintf(&b, "Case Duration: %d days\n", c.CaseAgeDays)
	fmt.Fprintf(&b, "Status: %s\n", c.Status)
	fmt.Fprintf(&b, "Severity: %s\n", c.Severity)
	fmt.Fprintf(&b, "Support Level: %s\n", c.SupportLevel)
	fmt.Fprintf(&b, "Case Reason: %s\n", c.CaseReason)

	if len(deployments) > 0 {
		dep := deployments[0]
		b.WriteString("\nDEPLOYMENT HISTORY:\n")
		fmt.Fprintf(&b, "- Deployment Case: %s\n", dep.CaseNumber)
		fmt.Fprintf(&b, "- Deploy Duration: %d days\n", dep.CaseAgeDays)
		fmt.Fprintf(&b, "- Service Deploy: %s\n", serviceDeployLabel(dep.IsServiceDeploy))
	}

	b.WriteString("\nCASE MESSAGES:\n")
	b.WriteString(joinMessages(c.Messages, maxSupportMessages, maxSupportMessageBytes))

	b.WriteString(`

ANALYSIS TASKS:

1. FRUSTRATION_SCORE: Rate customer frustration 0-10:
   - 0: Satisfied, thankful
   - 1-3: Minor concerns, patient
   - 4-6: Visible frustration, impatience
   - 7-8: Angry, escalation threats
   - 9-10: Extreme anger, churn risk

2. ISSUE_CLASS: Classify the root cause:
   - Systemic: Product not meeting expectations overall
   - Environmental: Integration or compatibility issues
   - Component: Specific hardware/software failure
   - Procedural: Configuration or knowledge issue

3. ISSUE_CATEGORY: Specific category (e.g., Performance, Hardware Failure, Replication, Network, Upgrade)

4. RESOLUTION_OUTLOOK: How fixable is this?
   - Challenging: May not have clear solution
   - Manageable: Solvable with effort
   - Straightforward: Clear path to resolution

5. IS_HARDWARE_FAILURE: Is this a hardware problem? (Yes/No)

6. IS_PERFORMANCE_ISSUE: Is this about performance/speed? (Yes/No)

7. IS_CONFIGURATION_ISSUE: Is this a config/setup problem? (Yes/No)
`)

	if len(deployments) > 0 {
		b.WriteString("\n8. DEPLOYMENT_RELATED: Is this issue related to the original deployment? (Yes/No/Unknown)\n")
	}

	b.WriteString(`
9. ESCALATION_DETECTED: Are there escalation signals? (Yes/No)
   Look for: executive mentions, manager requests, contract threats

10. KEY_PHRASE: Most concerning customer statement (quote if possible)

11. PAIN_POINTS: Customer's main frustrations (max 3)

12. RECOMMENDED_ACTION: What should support do next?

Respond in this exact format:
FRUSTRATION_SCORE: [number]
ISSUE_CLASS: [class]
ISSUE_CATEGORY: [category]
RESOLUTION_OUTLOOK: [outlook]
IS_HARDWARE_FAILURE: [Yes/No]
IS_PERFORMANCE_ISSUE: [Yes/No]
IS_CONFIGURATION_ISSUE: [Yes/No]`)

	if len(deployments) > 0 {
		b.WriteString("\nDEPLOYMENT_RELATED: [Yes/No/Unknown]")
	}

	b.WriteString(`
ESCALATION_DETECTED: [Yes/No]
KEY_PHRASE: [phrase]
PAIN_POINTS:
- [point 1]
- [point 2]
RECOMMENDED_ACTION: [action]`)

	return b.String()
}

func evaluationPrompt(o *model.LinkedOrder) string {
	var b strings.Builder

	b.WriteString("Perform a cross-layer evaluation of this customer's journey from sale to support.\n\n")
	fmt.Fprintf(&b, "ORDER: %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "ACCOUNT: %s\n\n", o.AccountName)

	if opp := o.Opportunity; opp != nil {
		b.WriteString("WHAT WAS SOLD (Opportunity Layer):\n")
		fmt.Fprintf(&b, "- Product: %s\n", opp.PrimaryProduct)
		fmt.Fprintf(&b, "- Amount: $%.2f\n", opp.Amount)
		fmt.Fprintf(&b, "- Use Case: %s\n", orNotSpecified(opp.PrimaryUseCase))
		fmt.Fprintf(&b, "- Business Need: %s\n", orNotSpecified(opp.BusinessNeed))
		fmt.Fprintf(&b, "- Pain Points: %s\n", orNotSpecified(opp.PainPoints))
		closeDate := "Unknown"
		if opp.CloseDate != nil {
			closeDate = opp.CloseDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "- Close Date: %s\n", closeDate)
	} else {
		b.WriteString("NO OPPORTUNITY DATA LINKED\n")
	}
	b.WriteString("\n")

	if len(o.Deployments) > 0 {
		dep := o.Deployments[0]
		deployType := "Self-Deploy"
		if dep.IsServiceDeploy {
			deployType = "Professional Services"
		}
		keyIssues := "None recorded"
		if len(dep.Messages) > 0 {
			keyIssues = strings.Join(takeStrings(dep.Messages, 2), ", ")
		}
		b.WriteString("HOW IT WAS DEPLOYED (Deployment Layer):\n")
		fmt.Fprintf(&b, "- Deployment Type: %s\n", deployType)
		fmt.Fprintf(&b, "- Duration: %d days\n", dep.CaseAgeDays)
		fmt.Fprintf(&b, "- Status: %s\n", dep.Status)
		fmt.Fprintf(&b, "- Severity: %s\n", dep.Severity)
		fmt.Fprintf(&b, "- Key Issues: %s\n", keyIssues)
	} else {
		b.WriteString("NO DEPLOYMENT DATA LINKED\n")
	}
	b.WriteString("\n")

	if len(o.SupportCases) > 0 {
		var s1, s2, totalAge int
		seen := make(map[string]bool)
		var reasons []string
		for _, c := range o.SupportCases {
			switch c.Severity {
			case model.SeverityS1:
				s1++
			case model.SeverityS2:
				s2++
			}
			totalAge += c.CaseAgeDays
			if c.CaseReason != "" && !seen[c.CaseReason] && len(reasons) < 5 {
				seen[c.CaseReason] = true
				reasons = append(reasons, c.CaseReason)
			}
		}
		avgAge := float64(totalAge) / float64(len(o.SupportCases))
		categories := "Various"
		if len(reasons) > 0 {
			categories = strings.Join(reasons, ", ")
		}
		b.WriteString("FIELD EXPERIENCE (Support Layer):\n")
		fmt.Fprintf(&b, "- Total Cases: %d\n", len(o.SupportCases))
		fmt.Fprintf(&b, "- S1 Critical: %d, S2 High: %d\n", s1, s2)
		fmt.Fprintf(&b, "- Average Case Duration: %.0f days\n", avgAge)
		fmt.Fprintf(&b, "- Issue Categories: %s\n", categories)
	} else {
		b.WriteString("NO SUPPORT CASES LINKED\n")
	}

	b.WriteString(`
EVALUATION TASKS:

1. JOURNEY_HEALTH_SCORE: Rate 0-100 the overall customer journey health:
   - 0-30: Critical - Major gaps between expectations and reality
   - 31-50: Poor - Significant issues, relationship at risk
   - 51-70: Fair - Some problems, recoverable
   - 71-85: Good - Minor issues, generally positive
   - 86-100: Excellent - Expectations met or exceeded

2. CHURN_RISK: Classify the churn risk:
   - Critical: High likelihood of leaving, immediate intervention needed
   - High: Significant risk, proactive engagement required
   - Medium: Some concerns, monitoring recommended
   - Low: Stable relationship, standard engagement

3. EXPECTATION_VS_REALITY: 2-3 sentences summarizing how well the actual experience matched what was sold.

4. EXPECTATIONS_MET: List what went well (max 3)

5. EXPECTATIONS_NOT_MET: List where reality fell short (max 3)

6. DEPLOYMENT_IMPACT: How did the deployment approach affect support needs? (1-2 sentences)

7. ROOT_CAUSE_PATTERN: What underlying pattern do you see across all layers? (1-2 sentences)

8. CRITICAL_FINDINGS: Most important issues to address (max 3)

9. POSITIVE_SIGNALS: Positive indicators in the relationship (max 3)

10. IMMEDIATE_ACTIONS: What should be done now? (max 3 specific actions)

11. RELATIONSHIP_RECOVERY: If at risk, what recovery strategy is recommended? (1-2 sentences)

Respond in this exact format:
JOURNEY_HEALTH_SCORE: [number]
CHURN_RISK: [level]
EXPECTATION_VS_REALITY: [summary]
EXPECTATIONS_MET:
- [item 1]
- [item 2]
EXPECTATIONS_NOT_MET:
- [item 1]
- [item 2]
DEPLOYMENT_IMPACT: [summary]
ROOT_CAUSE_PATTERN: [pattern]
CRITICAL_FINDINGS:
- [finding 1]
- [finding 2]
POSITIVE_SIGNALS:
- [signal 1]
IMMEDIATE_ACTIONS:
- [action 1]
- [action 2]
RELATIONSHIP_RECOVERY: [strategy]`)

	return b.String()
}

func joinMessages(messages []string, maxMessages, maxBytes int) string {
	joined := strings.Join(takeStrings(messages, maxMessages), messageSeparator)
	if maxBytes > 0 && len(joined) > maxBytes {
		joined = joined[:maxBytes]
	}
	return joined
}

func takeStrings(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func serviceDeployLabel(isService bool) string {
	if isService {
		return "Yes"
	}
	return "No (self-deploy)"
}

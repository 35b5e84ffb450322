package model

import "strings"

// Severity is the case criticality tier. S1 is most severe.
type Severity string

const (
	SeverityS1 Severity = "S1" // critical - system down
	SeverityS2 Severity = "S2" // high - major impact
	SeverityS3 Severity = "S3" // medium - moderate impact
	SeverityS4 Severity = "S4" // low - minor impact
)

// ParseSeverity maps free-text severity values onto the closed Severity set.
// Unrecognized input defaults to S4.
func ParseSeverity(raw string) Severity {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(v, "S1"), strings.Contains(v, "SEV1"), strings.Contains(v, "CRITICAL"):
		return SeverityS1
	case strings.Contains(v, "S2"), strings.Contains(v, "SEV2"), strings.Contains(v, "HIGH"):
		return SeverityS2
	case strings.Contains(v, "S3"), strings.Contains(v, "SEV3"), strings.Contains(v, "MEDIUM"):
		return SeverityS3
	default:
		return SeverityS4
	}
}

// SupportLevel is the customer's support tier.
type SupportLevel string

const (
	SupportGold    SupportLevel = "Gold"
	SupportSilver  SupportLevel = "Silver"
	SupportBronze  SupportLevel = "Bronze"
	SupportUnknown SupportLevel = "Unknown"
)

// ParseSupportLevel maps free-text tier values onto the closed SupportLevel set.
func ParseSupportLevel(raw string) SupportLevel {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(v, "GOLD"):
		return SupportGold
	case strings.Contains(v, "SILVER"):
		return SupportSilver
	case strings.Contains(v, "BRONZE"):
		return SupportBronze
	default:
		return SupportUnknown
	}
}

// ProductSeries identifies a hardware product line.
type ProductSeries string

const (
	SeriesF       ProductSeries = "F" // flash-based
	SeriesM       ProductSeries = "M" // midrange
	SeriesH       ProductSeries = "H" // hybrid
	SeriesR       ProductSeries = "R" // rack-mount
	SeriesUnknown ProductSeries = "Unknown"
)

// ParseProductSeries maps free-text series values ("F", "F-Series", "fseries")
// onto the closed ProductSeries set.
func ParseProductSeries(raw string) ProductSeries {
	v := strings.ToUpper(strings.TrimSpace(raw))
	v = strings.TrimSuffix(v, "-SERIES")
	v = strings.TrimSuffix(v, "SERIES")
	v = strings.TrimSpace(v)
	switch v {
	case "F":
		return SeriesF
	case "M":
		return SeriesM
	case "H":
		return SeriesH
	case "R":
		return SeriesR
	default:
		return SeriesUnknown
	}
}

// SeriesFromProduct derives a product series from a product name such as
// "F60-HA" or "M50". Only the leading letter is considered.
func SeriesFromProduct(product string) ProductSeries {
	p := strings.ToUpper(strings.TrimSpace(product))
	if p == "" {
		return SeriesUnknown
	}
	switch p[0] {
	case 'F':
		return SeriesF
	case 'M':
		return SeriesM
	case 'H':
		return SeriesH
	case 'R':
		return SeriesR
	default:
		return SeriesUnknown
	}
}

// ChurnRisk is the ordinal relationship-risk classification.
type ChurnRisk string

const (
	RiskLow      ChurnRisk = "Low"
	RiskMedium   ChurnRisk = "Medium"
	RiskHigh     ChurnRisk = "High"
	RiskCritical ChurnRisk = "Critical"
	RiskUnknown  ChurnRisk = "Unknown"
)

// Rank returns the ordinal position of the risk level, Low < Medium < High <
// Critical. Unknown ranks below Low.
func (r ChurnRisk) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// IsElevated reports whether the risk level is High or Critical.
func (r ChurnRisk) IsElevated() bool {
	return r == RiskHigh || r == RiskCritical
}

// RiskFromScore maps an accumulated integer risk score to a ChurnRisk level.
func RiskFromScore(score int) ChurnRisk {
	switch {
	case score >= 8:
		return RiskCritical
	case score >= 5:
		return RiskHigh
	case score >= 2:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ParseChurnRisk maps free-text risk values onto the closed ChurnRisk set.
func ParseChurnRisk(raw string) ChurnRisk {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range []ChurnRisk{RiskCritical, RiskHigh, RiskMedium, RiskLow} {
		if strings.Contains(v, strings.ToLower(string(r))) {
			return r
		}
	}
	return RiskUnknown
}

// UseCaseCategory is one of the nine fixed workload classifications.
type UseCaseCategory string

const (
	UseCaseMedia          UseCaseCategory = "Media & Entertainment"
	UseCaseBackup         UseCaseCategory = "Backup & Archive"
	UseCaseVirtualization UseCaseCategory = "Virtualization"
	UseCaseDatabase       UseCaseCategory = "Database"
	UseCaseFileSharing    UseCaseCategory = "File Sharing"
	UseCaseSurveillance   UseCaseCategory = "Video Surveillance"
	UseCaseHPC            UseCaseCategory = "Scientific/HPC"
	UseCaseGeneral        UseCaseCategory = "General Purpose"
	UseCaseUnknown        UseCaseCategory = "Unknown"
)

// UseCaseCategories lists all categories in presentation order.
var UseCaseCategories = []UseCaseCategory{
	UseCaseMedia,
	UseCaseBackup,
	UseCaseVirtualization,
	UseCaseDatabase,
	UseCaseFileSharing,
	UseCaseSurveillance,
	UseCaseHPC,
	UseCaseGeneral,
	UseCaseUnknown,
}

var useCaseKeywords = []struct {
	category UseCaseCategory
	keywords []string
}{
	{UseCaseMedia, []string{"media", "video edit", "broadcast", "post-production", "4k", "8k"}},
	{UseCaseBackup, []string{"backup", "archive", "dr", "disaster", "retention", "cold storage"}},
	{UseCaseVirtualization, []string{"vm", "virtual", "vdi", "esxi", "hyper-v", "container", "docker", "kubernetes"}},
	{UseCaseDatabase, []string{"database", "sql", "oracle", "mysql", "postgres", "analytics", "olap", "oltp"}},
	{UseCaseFileSharing, []string{"file", "share", "nas", "smb", "nfs", "cifs", "collab", "home director"}},
	{UseCaseSurveillance, []string{"surveil", "camera", "nvr", "security", "cctv"}},
	{UseCaseHPC, []string{"hpc", "research", "scientific", "render", "simulation", "compute"}},
}

// CategorizeUseCase maps free-text use-case or business-need text to one of
// the fixed categories. Non-empty text with no keyword hit falls back to
// General Purpose; empty text is Unknown.
func CategorizeUseCase(text string) UseCaseCategory {
	if strings.TrimSpace(text) == "" {
		return UseCaseUnknown
	}
	lower := strings.ToLower(text)
	for _, uc := range useCaseKeywords {
		for _, kw := range uc.keywords {
			if strings.Contains(lower, kw) {
				return uc.category
			}
		}
	}
	return UseCaseGeneral
}

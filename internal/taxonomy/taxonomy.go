// Package taxonomy holds the static keyword taxonomy and lexicons shared by the parser,
// the job description analyzer, the ATS scorer and the tone heuristics.
package taxonomy

import "strings"

// Category names
const (
	CategoryGovernance     = "governance"
	CategoryInfrastructure = "infrastructure"
	CategoryCloud          = "cloud"
	CategoryITSM           = "itsm"
	CategorySecurity       = "security"
	CategoryERP            = "erp"
	CategoryLeadership     = "leadership"
	CategoryBudget         = "budget"
	CategoryDigital        = "digital"
)

// Category is a named list of lowercase keywords and phrases
type Category struct {
	Name     string
	Keywords []string
}

// categories is ordered; iteration order drives keyword ordering in analysis results
var categories = []Category{
	{
		Name: CategoryGovernance,
		Keywords: []string{
			"governance", "itil", "cobit", "iso 27001", "policy", "audit", "compliance",
			"framework", "standards", "board", "steering committee", "risk management", "gdpr",
		},
	},
	{
		Name: CategoryInfrastructure,
		Keywords: []string{
			"infrastructure", "network", "data center", "datacentre", "servers", "virtualization",
			"vmware", "storage", "backup", "disaster recovery", "hardware", "wan", "lan",
		},
	},
	{
		Name: CategoryCloud,
		Keywords: []string{
			"cloud", "azure", "aws", "gcp", "saas", "paas", "iaas", "m365", "office 365",
			"hybrid cloud", "cloud migration",
		},
	},
	{
		Name: CategoryITSM,
		Keywords: []string{
			"itsm", "service desk", "help desk", "incident", "change management", "sla",
			"servicenow", "service management", "problem management",
		},
	},
	{
		Name: CategorySecurity,
		Keywords: []string{
			"security", "cybersecurity", "cyber", "firewall", "siem", "identity", "zero trust",
			"penetration", "vulnerability", "ciso",
		},
	},
	{
		Name: CategoryERP,
		Keywords: []string{
			"erp", "sap", "oracle", "dynamics", "netsuite", "crm", "hris", "salesforce", "workday",
		},
	},
	{
		Name: CategoryLeadership,
		Keywords: []string{
			"leadership", "head of", "director", "team", "stakeholder", "mentoring", "coaching",
			"cross-functional", "executive", "people management",
		},
	},
	{
		Name: CategoryBudget,
		Keywords: []string{
			"budget", "cost", "capex", "opex", "p&l", "procurement", "vendor", "contract", "roi",
			"savings", "financial", "commercial",
		},
	},
	{
		Name: CategoryDigital,
		Keywords: []string{
			"digital", "transformation", "automation", "innovation", "agile", "devops", "ci/cd",
			"api", "analytics", "data", "machine learning",
		},
	},
}

// Categories returns the taxonomy in its fixed iteration order. The result is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string{}, c.Keywords...)}
	}
	return out
}

// CategoryNames returns category names in taxonomy order
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Keywords returns the keyword list of one category, or nil for an unknown name
func Keywords(category string) []string {
	for _, c := range categories {
		if c.Name == category {
			return append([]string{}, c.Keywords...)
		}
	}
	return nil
}

// acronyms maps lowercase skill keys to their canonical casing
var acronyms = map[string]string{
	"aws":        "AWS",
	"itil":       "ITIL",
	"m365":       "M365",
	"erp":        "ERP",
	"sql":        "SQL",
	"azure":      "Azure",
	"gcp":        "GCP",
	"api":        "API",
	"ci/cd":      "CI/CD",
	"devops":     "DevOps",
	"saas":       "SaaS",
	"paas":       "PaaS",
	"iaas":       "IaaS",
	"kpi":        "KPI",
	"okr":        "OKR",
	"ceo":        "CEO",
	"cio":        "CIO",
	"cto":        "CTO",
	"ciso":       "CISO",
	"roi":        "ROI",
	"sla":        "SLA",
	"p&l":        "P&L",
	"crm":        "CRM",
	"hris":       "HRIS",
	"itsm":       "ITSM",
	"cobit":      "COBIT",
	"gdpr":       "GDPR",
	"sap":        "SAP",
	"togaf":      "TOGAF",
	"prince2":    "PRINCE2",
	"iso 27001":  "ISO 27001",
	"vmware":     "VMware",
	"servicenow": "ServiceNow",
	"office 365": "Office 365",
	"power bi":   "Power BI",
}

// CanonicalAcronym returns the fixed casing for a known acronym (case-insensitive key)
func CanonicalAcronym(keyword string) (string, bool) {
	canonical, ok := acronyms[strings.ToLower(strings.TrimSpace(keyword))]
	return canonical, ok
}

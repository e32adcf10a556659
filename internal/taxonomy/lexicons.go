package taxonomy

// Tag vocabulary assigned to achievements
const (
	TagGovernance            = "Governance"
	TagInfrastructure        = "Infrastructure"
	TagCloud                 = "Cloud"
	TagITSM                  = "ITSM"
	TagCybersecurity         = "Cybersecurity"
	TagRisk                  = "Risk"
	TagCompliance            = "Compliance"
	TagERP                   = "ERP"
	TagLeadership            = "Leadership"
	TagStrategy              = "Strategy"
	TagBudget                = "Budget"
	TagVendorManagement      = "Vendor Management"
	TagDigitalTransformation = "Digital Transformation"
	TagProjectManagement     = "Project Management"
)

// TagRule pairs a tag with the case-insensitive pattern that triggers it
type TagRule struct {
	Tag     string
	Pattern string
}

// TagRules is ordered; assigned tags follow this order
var TagRules = []TagRule{
	{TagGovernance, `(?i)\b(governance|itil|cobit|policy|policies|framework|steering committee)\b`},
	{TagInfrastructure, `(?i)\b(infrastructure|network|data ?cent(er|re)s?|servers?|virtuali[sz]ation|vmware|storage|backup|hardware)\b`},
	{TagCloud, `(?i)\b(cloud|azure|aws|gcp|saas|paas|iaas|m365|office 365)\b`},
	{TagITSM, `(?i)\b(itsm|service desk|help ?desk|incident|change management|slas?|servicenow|service management)\b`},
	{TagCybersecurity, `(?i)\b(security|cyber ?security|cyber|firewall|siem|zero trust|penetration|vulnerabilit(y|ies)|ciso)\b`},
	{TagRisk, `(?i)\b(risks?|disaster recovery|business continuity|resilience|mitigat\w*)\b`},
	{TagCompliance, `(?i)\b(compliance|compliant|audits?|iso ?27001|gdpr|regulatory|sox)\b`},
	{TagERP, `(?i)\b(erp|sap|oracle|dynamics|netsuite|crm|hris|salesforce|workday)\b`},
	{TagLeadership, `(?i)\b(led|lead|leading|leadership|managed|mentored|coached|team|teams|head of|director)\b`},
	{TagStrategy, `(?i)\b(strategy|strategic|roadmap|vision|board|executive)\b`},
	{TagBudget, `(?i)\b(budgets?|cost|costs|capex|opex|p&l|savings?|saved|financial|roi)\b`},
	{TagVendorManagement, `(?i)\b(vendors?|suppliers?|contracts?|procurement|outsourc\w*|third[- ]party)\b`},
	{TagDigitalTransformation, `(?i)\b(digital|transformation|automation|automated|moderni[sz]\w*|innovation|devops)\b`},
	{TagProjectManagement, `(?i)\b(projects?|programmes?|programs?|delivery|delivered|prince2|agile|scrum|pmo|milestones?)\b`},
}

// TagVocabulary returns the fixed tag vocabulary in rule order
func TagVocabulary() []string {
	tags := make([]string, len(TagRules))
	for i, r := range TagRules {
		tags[i] = r.Tag
	}
	return tags
}

// CategoryTagEmphasis maps a taxonomy category to the tags emphasised when it scores above one
var CategoryTagEmphasis = map[string][]string{
	CategoryGovernance:     {TagGovernance, TagCompliance},
	CategoryInfrastructure: {TagInfrastructure},
	CategoryCloud:          {TagCloud},
	CategoryITSM:           {TagITSM},
	CategorySecurity:       {TagCybersecurity, TagRisk},
	CategoryERP:            {TagERP},
	CategoryLeadership:     {TagLeadership, TagStrategy},
	CategoryBudget:         {TagBudget, TagVendorManagement},
	CategoryDigital:        {TagDigitalTransformation, TagProjectManagement},
}

// Skill keyword buckets used by the parser. Entries are lowercase.
var (
	TechnicalSkills = []string{
		"azure", "aws", "gcp", "m365", "office 365", "vmware", "servicenow", "sql", "python",
		"powershell", "linux", "windows server", "active directory", "kubernetes", "docker",
		"terraform", "sap", "salesforce", "dynamics", "power bi", "devops", "ci/cd", "api",
		"networking", "firewall", "siem", "erp", "crm", "saas",
	}
	GovernanceSkills = []string{
		"itil", "cobit", "iso 27001", "gdpr", "togaf", "prince2", "risk management",
		"compliance", "audit", "governance", "policy", "itsm", "change management",
		"business continuity", "disaster recovery", "sla",
	}
	LeadershipSkills = []string{
		"leadership", "stakeholder management", "team building", "mentoring", "coaching",
		"strategic planning", "budget management", "vendor management", "change leadership",
		"people management", "negotiation", "communication", "p&l", "kpi", "okr",
	}
)

// Positioning modes understood by the verb suggester
const (
	VerbModeGovernance     = "governance"
	VerbModeInfrastructure = "infrastructure"
	VerbModeDigital        = "digital"
	VerbModeHybrid         = "hybrid"
)

// VerbBanks holds the strong opening verbs for each positioning mode, preferred verbs first
var VerbBanks = map[string][]string{
	VerbModeGovernance: {
		"established", "governed", "standardised", "implemented", "audited", "aligned",
		"assured", "championed", "formalised", "mitigated", "enforced", "institutionalised",
	},
	VerbModeInfrastructure: {
		"architected", "engineered", "modernised", "consolidated", "migrated", "deployed",
		"stabilised", "scaled", "automated", "optimised", "virtualised", "rebuilt",
	},
	VerbModeDigital: {
		"transformed", "digitised", "launched", "pioneered", "accelerated", "automated",
		"reimagined", "delivered", "integrated", "innovated", "streamlined",
	},
	VerbModeHybrid: {
		"led", "delivered", "directed", "spearheaded", "orchestrated", "drove", "transformed",
		"established", "championed", "optimised", "negotiated", "secured",
	},
}

// Verbs returns the bank for a mode, falling back to hybrid for unknown modes
func Verbs(mode string) []string {
	if bank, ok := VerbBanks[mode]; ok {
		return append([]string{}, bank...)
	}
	return append([]string{}, VerbBanks[VerbModeHybrid]...)
}

// WeakPhrases are passive openers replaced by the verb suggester. Longest first so the
// most specific phrase wins.
var WeakPhrases = []string{
	"was responsible for",
	"duties included",
	"participated in",
	"responsible for",
	"assisted with",
	"assisted in",
	"involved in",
	"tasked with",
	"worked on",
	"helped",
}

// Buzzwords flagged with medium severity
var Buzzwords = []string{
	"synergy", "synergies", "leverage", "leveraged", "best-in-class", "world-class",
	"cutting-edge", "game-changer", "paradigm shift", "thought leader", "disruptive",
	"move the needle", "low-hanging fruit", "holistic", "robust", "seamless",
}

// GenericPhrases flagged with high severity
var GenericPhrases = []string{
	"results-driven", "results driven", "team player", "hard-working", "hardworking",
	"detail-oriented", "go-getter", "self-starter", "proven track record",
	"think outside the box", "dynamic professional", "passionate about",
	"excellent communication skills",
}

// WeakOpeners flagged with high severity when an achievement starts with them
var WeakOpeners = []string{
	"was responsible for", "responsible for", "helped", "assisted", "worked on", "involved in",
	"participated in", "tasked with", "duties included", "was part of",
}

// ATS keyword families
var (
	GovernanceRiskTerms = []string{
		"governance", "risk", "compliance", "audit", "itil", "cobit", "iso 27001", "gdpr",
		"policy", "regulatory", "controls",
	}
	BusinessStrategyTerms = []string{
		"strategy", "strategic", "business", "roadmap", "transformation", "stakeholder",
		"commercial", "revenue", "growth", "board", "executive",
	}
)

// LeadershipVerbPattern matches leadership verbs as whole words
const LeadershipVerbPattern = `(?i)\b(led|directed|managed|headed|oversaw|spearheaded|built|mentored|championed|orchestrated)\b`

// ExecutiveScalePattern matches signals of executive scale
const ExecutiveScalePattern = `(?i)(\b(budget|p&l|portfolio|enterprise[- ]wide|organi[sz]ation[- ]wide|global|multi[- ]site|board)\b|[$£€]\s?\d+(\.\d+)?\s?(k|m|mn|bn|million|billion)\b|\b\d+\+?[- ]?(person|people|staff|fte|engineers|users|sites|countries)\b)`

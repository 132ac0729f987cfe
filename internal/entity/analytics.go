package entity

// GrowthPoint is the number of registrations created on one UTC day.
// Verified reflects the verification status at query time.
type GrowthPoint struct {
	Day      string `json:"day"`
	Count    int    `json:"count"`
	Verified int    `json:"verified"`
}

type CategoryField string

const (
	CategoryIndustry    CategoryField = "industry"
	CategoryCompanySize CategoryField = "companySize"
)

type CategoryCount struct {
	Value         string `json:"value"`
	Count         int    `json:"count"`
	VerifiedCount int    `json:"verifiedCount"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type PainPointSummary struct {
	TotalEntries int         `json:"totalEntries"`
	TopWords     []WordCount `json:"topWords"`
}

// AnalyticsSummary is the dashboard view computed from a single snapshot.
type AnalyticsSummary struct {
	Growth      []GrowthPoint    `json:"growth"`
	Industry    []CategoryCount  `json:"industry"`
	CompanySize []CategoryCount  `json:"companySize"`
	PainPoints  PainPointSummary `json:"painPoints"`
}

type WaitlistStats struct {
	Total         int             `json:"total"`
	Verified      int             `json:"verified"`
	ByIndustry    []CategoryCount `json:"byIndustry"`
	ByCompanySize []CategoryCount `json:"byCompanySize"`
}

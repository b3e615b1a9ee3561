package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProviderFamily groups providers that share a product code convention
type ProviderFamily string

const (
	FamilyFanza          ProviderFamily = "fanza"
	FamilyMGS            ProviderFamily = "mgs"
	FamilyDuga           ProviderFamily = "duga"
	FamilySokmil         ProviderFamily = "sokmil"
	FamilyFC2            ProviderFamily = "fc2"
	FamilyHeyzo          ProviderFamily = "heyzo"
	FamilyCaribbeancom   ProviderFamily = "caribbeancom"
	FamilyCaribbeancomPR ProviderFamily = "caribbeancompr"
	Family1Pondo         ProviderFamily = "1pondo"
	Family10Musume       ProviderFamily = "10musume"
	FamilyPacopacomama   ProviderFamily = "pacopacomama"
	FamilyTokyoHot       ProviderFamily = "tokyohot"
	FamilyJapanska       ProviderFamily = "japanska"
	FamilyB10f           ProviderFamily = "b10f"
	FamilyHeyDouga       ProviderFamily = "heydouga"
)

// IsValidFamily checks if a provider family is known
func IsValidFamily(family ProviderFamily) bool {
	switch family {
	case FamilyFanza, FamilyMGS, FamilyDuga, FamilySokmil, FamilyFC2,
		FamilyHeyzo, FamilyCaribbeancom, FamilyCaribbeancomPR, Family1Pondo,
		Family10Musume, FamilyPacopacomama, FamilyTokyoHot, FamilyJapanska,
		FamilyB10f, FamilyHeyDouga:
		return true
	default:
		return false
	}
}

// NormalizedID is the canonical, provider-family-aware product key used for deduplication
type NormalizedID string

// String returns the string representation of the NormalizedID
func (n NormalizedID) String() string {
	return string(n)
}

// Empty reports whether the id could not be computed
func (n NormalizedID) Empty() bool {
	return n == ""
}

// RawExtraction is the unvalidated record a provider crawler produces for one crawled item.
// It is consumed immediately by the pipeline and never persisted as-is.
type RawExtraction struct {
	Provider        string         `json:"provider"`         // provider name as registered, e.g. "fanza"
	Family          ProviderFamily `json:"family"`           // provider family, filled from the registry when empty
	ProviderCode    string         `json:"provider_code"`    // provider-native product code
	Title           string         `json:"title"`            // product title as extracted
	Description     string         `json:"description"`      // product description as extracted
	Price           int            `json:"price"`            // list price in yen (0 when unknown)
	SalePrice       *int           `json:"sale_price"`       // sale price when on sale
	DiscountPercent *int           `json:"discount_percent"` // discount percent when on sale
	Performers      []string       `json:"performers"`       // raw performer strings
	ThumbnailURL    string         `json:"thumbnail_url"`    // default thumbnail
	SampleVideoURLs []string       `json:"sample_video_urls"`
	ReleaseDate     *time.Time     `json:"release_date"`
	DurationMinutes *int           `json:"duration_minutes"`
	AffiliateURL    string         `json:"affiliate_url"`
	RequestedURL    string         `json:"requested_url"` // URL the crawler asked for
	FinalURL        string         `json:"final_url"`     // URL the crawler ended on after redirects
}

// PlaceholderTitle returns the "{provider}-{code}" title crawlers emit when the real title is missing
func (e *RawExtraction) PlaceholderTitle() string {
	return fmt.Sprintf("%s-%s", e.Provider, e.ProviderCode)
}

// TrimmedTitle returns the title without surrounding whitespace
func (e *RawExtraction) TrimmedTitle() string {
	return strings.TrimSpace(e.Title)
}

// RejectReason explains why an extraction or a navigation was rejected
type RejectReason string

const (
	RejectNone                   RejectReason = ""
	RejectPlaceholderTitle       RejectReason = "placeholder title"
	RejectTopPageTitle           RejectReason = "top-page title"
	RejectTitleTooShort          RejectReason = "title too short"
	RejectBoilerplateDescription RejectReason = "boilerplate description"
	RejectRedirectHost           RejectReason = "redirected to another host"
	RejectRedirectRoot           RejectReason = "redirected to site root"
	RejectRedirectListing        RejectReason = "redirected to listing page"
	RejectRedirectUnparseable    RejectReason = "unparseable final url"
)

// RunStatus is the terminal status of an orchestrator run
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ProviderSummary holds the per-provider counters of a run
type ProviderSummary struct {
	Provider     string        `json:"provider"`
	Fetched      int           `json:"fetched"`
	Accepted     int           `json:"accepted"`
	Rejected     int           `json:"rejected"`
	Errored      int           `json:"errored"`
	NewProducts  int           `json:"new_products"`
	PricesFailed int           `json:"prices_failed"`
	Duration     time.Duration `json:"duration"`
	Error        string        `json:"error,omitempty"`
}

// RunSummary is the outcome of one orchestrator run, delivered to notification sinks
type RunSummary struct {
	RunID      string            `json:"run_id"`
	Status     RunStatus         `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Providers  []ProviderSummary `json:"providers"`
	Error      string            `json:"error,omitempty"`
}

// Totals sums the per-provider counters
func (s *RunSummary) Totals() ProviderSummary {
	total := ProviderSummary{Provider: "all"}
	for _, p := range s.Providers {
		total.Fetched += p.Fetched
		total.Accepted += p.Accepted
		total.Rejected += p.Rejected
		total.Errored += p.Errored
		total.NewProducts += p.NewProducts
		total.PricesFailed += p.PricesFailed
	}
	total.Duration = s.FinishedAt.Sub(s.StartedAt)
	return total
}

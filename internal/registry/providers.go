package registry

import (
	_ "embed"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/identifier"
)

//go:embed providers.json
var defaultRegistryJSON []byte

// defaultLocale is the title locale of providers that do not declare one
const defaultLocale = "ja"

// ProviderRegistry defines the interface for provider pattern lookups.
// Pattern tables are data; adding a provider only changes the registry file.
//
//go:generate mockgen -source=providers.go -destination=../mocks/provider_registry.go -package=mocks -mock_names=ProviderRegistry=MockProviderRegistry
type ProviderRegistry interface {
	// Provider returns the provider entry for a provider name
	Provider(name string) (*ProviderInfo, bool)

	// Providers returns all registered provider names, sorted
	Providers() []string

	// Family returns the provider family for a provider name, or the name itself when unregistered
	Family(name string) domain.ProviderFamily

	// TitlePatterns returns the global and provider-specific top-page title patterns
	TitlePatterns(name string) []*regexp.Regexp

	// DescriptionPatterns returns the global and provider-specific boilerplate description patterns
	DescriptionPatterns(name string) []*regexp.Regexp

	// RedirectPatterns returns the global and provider-specific listing/age-gate path patterns
	RedirectPatterns(name string) []*regexp.Regexp

	// Normalizer returns the identifier normalizer built from the registry's rewrite rules
	Normalizer() *identifier.Normalizer
}

// ProviderInfo represents a provider entry in the registry
type ProviderInfo struct {
	Name                 string                `json:"name"`
	Family               domain.ProviderFamily `json:"family"`
	Host                 string                `json:"host"`
	Locale               string                `json:"locale"`
	TitlePatterns        []string              `json:"title_patterns"`
	DescriptionPatterns  []string              `json:"description_patterns"`
	RedirectPathPatterns []string              `json:"redirect_path_patterns"`
}

// ProviderRegistryData represents the structure of the registry JSON file
type ProviderRegistryData struct {
	Version              int                                                `json:"version"`
	TitlePatterns        []string                                           `json:"title_patterns"`
	DescriptionPatterns  []string                                           `json:"description_patterns"`
	RedirectPathPatterns []string                                           `json:"redirect_path_patterns"`
	Providers            []ProviderInfo                                     `json:"providers"`
	IDRules              map[domain.ProviderFamily][]identifier.RewriteRule `json:"id_rules"`
}

type patternSet struct {
	title       []*regexp.Regexp
	description []*regexp.Regexp
	redirect    []*regexp.Regexp
}

// providerRegistry is the internal implementation of ProviderRegistry interface
type providerRegistry struct {
	data       *ProviderRegistryData
	global     patternSet
	providers  map[string]*ProviderInfo
	patterns   map[string]patternSet
	normalizer *identifier.Normalizer
}

// ProviderRegistryLoader defines the interface for loading provider registries from files
//
//go:generate mockgen -source=providers.go -destination=../mocks/provider_registry.go -package=mocks -mock_names=ProviderRegistryLoader=MockProviderRegistryLoader
type ProviderRegistryLoader interface {
	// Load loads the provider registry from a JSON file
	Load(filePath string) (ProviderRegistry, error)
}

// providerRegistryLoader is the internal implementation of ProviderRegistryLoader interface
type providerRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewProviderRegistryLoader creates a new ProviderRegistryLoader with injected dependencies
func NewProviderRegistryLoader(fs adapter.FileSystem, json adapter.JSON) ProviderRegistryLoader {
	return &providerRegistryLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the provider registry from a JSON file
func (l *providerRegistryLoader) Load(filePath string) (ProviderRegistry, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var registryData ProviderRegistryData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}

	return build(&registryData)
}

// LoadDefault loads the registry embedded in the binary
func LoadDefault(json adapter.JSON) (ProviderRegistry, error) {
	var registryData ProviderRegistryData
	if err := json.Unmarshal(defaultRegistryJSON, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse embedded registry JSON: %w", err)
	}

	return build(&registryData)
}

// MustLoadDefault loads the embedded registry and panics on error
func MustLoadDefault() ProviderRegistry {
	reg, err := LoadDefault(adapter.NewJSON())
	if err != nil {
		panic(err)
	}
	return reg
}

// build compiles every pattern once and indexes providers by lower-cased name
func build(data *ProviderRegistryData) (*providerRegistry, error) {
	r := &providerRegistry{
		data:      data,
		providers: make(map[string]*ProviderInfo, len(data.Providers)),
		patterns:  make(map[string]patternSet, len(data.Providers)),
	}

	var err error
	if r.global, err = compileSet("global", data.TitlePatterns, data.DescriptionPatterns, data.RedirectPathPatterns); err != nil {
		return nil, err
	}

	for i := range data.Providers {
		provider := &data.Providers[i]
		name := strings.ToLower(strings.TrimSpace(provider.Name))
		if name == "" {
			return nil, fmt.Errorf("provider %d has no name", i)
		}
		if _, exists := r.providers[name]; exists {
			return nil, fmt.Errorf("duplicate provider %q", name)
		}
		if provider.Family == "" {
			provider.Family = domain.ProviderFamily(name)
		}
		if provider.Locale == "" {
			provider.Locale = defaultLocale
		}

		set, err := compileSet(name, provider.TitlePatterns, provider.DescriptionPatterns, provider.RedirectPathPatterns)
		if err != nil {
			return nil, err
		}

		r.providers[name] = provider
		r.patterns[name] = set
	}

	r.normalizer, err = identifier.NewNormalizer(data.IDRules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile id rules: %w", err)
	}

	return r, nil
}

func compileSet(owner string, title, description, redirect []string) (patternSet, error) {
	var set patternSet
	var err error
	if set.title, err = compileAll(owner, "title", title); err != nil {
		return set, err
	}
	if set.description, err = compileAll(owner, "description", description); err != nil {
		return set, err
	}
	if set.redirect, err = compileAll(owner, "redirect", redirect); err != nil {
		return set, err
	}
	return set, nil
}

func compileAll(owner, kind string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q for %s: %w", kind, p, owner, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Provider returns the provider entry for a provider name
func (r *providerRegistry) Provider(name string) (*ProviderInfo, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Providers returns all registered provider names, sorted
func (r *providerRegistry) Providers() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Family returns the provider family for a provider name
func (r *providerRegistry) Family(name string) domain.ProviderFamily {
	if p, ok := r.Provider(name); ok {
		return p.Family
	}
	return domain.ProviderFamily(strings.ToLower(strings.TrimSpace(name)))
}

// TitlePatterns returns the global and provider-specific top-page title patterns
func (r *providerRegistry) TitlePatterns(name string) []*regexp.Regexp {
	if r == nil {
		return nil
	}
	return concat(r.global.title, r.patterns[strings.ToLower(strings.TrimSpace(name))].title)
}

// DescriptionPatterns returns the global and provider-specific boilerplate description patterns
func (r *providerRegistry) DescriptionPatterns(name string) []*regexp.Regexp {
	if r == nil {
		return nil
	}
	return concat(r.global.description, r.patterns[strings.ToLower(strings.TrimSpace(name))].description)
}

// RedirectPatterns returns the global and provider-specific redirect path patterns
func (r *providerRegistry) RedirectPatterns(name string) []*regexp.Regexp {
	if r == nil {
		return nil
	}
	return concat(r.global.redirect, r.patterns[strings.ToLower(strings.TrimSpace(name))].redirect)
}

// Normalizer returns the identifier normalizer built from the registry's rewrite rules
func (r *providerRegistry) Normalizer() *identifier.Normalizer {
	if r == nil {
		return nil
	}
	return r.normalizer
}

// HostURL returns the provider's storefront root, used as the reference when a crawler does not report the requested URL
func (p *ProviderInfo) HostURL() string {
	if p == nil || p.Host == "" {
		return ""
	}
	u := url.URL{Scheme: "https", Host: p.Host, Path: "/"}
	return u.String()
}

func concat(a, b []*regexp.Regexp) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

package foodex2

// CatalogueRelease identifies a versioned snapshot of the FoodEx2 catalogue
// (terms, hierarchies, forbidden-process table, rule messages).
type CatalogueRelease string

// Known catalogue releases. Unknown releases are still accepted by
// catalog.Store implementations; these constants exist for callers that
// want to pin a known-good snapshot.
const (
	Release2023 CatalogueRelease = "2023.1"
	Release2024 CatalogueRelease = "2024.1"
)

// String returns the release string.
func (r CatalogueRelease) String() string {
	return string(r)
}

// releaseConfig holds release-specific metadata, mirroring how a catalogue
// export names its own reference tables.
type releaseConfig struct {
	ForbiddenProcessTable string
	RuleMessageTable      string
}

var releaseConfigs = map[CatalogueRelease]releaseConfig{
	Release2023: {
		ForbiddenProcessTable: "FORBIDDEN_PROCESSES_2023.1.csv",
		RuleMessageTable:      "BR_MESSAGES_2023.1.csv",
	},
	Release2024: {
		ForbiddenProcessTable: "FORBIDDEN_PROCESSES_2024.1.csv",
		RuleMessageTable:      "BR_MESSAGES_2024.1.csv",
	},
}

// getReleaseConfig returns the configuration for a catalogue release.
func getReleaseConfig(r CatalogueRelease) (releaseConfig, bool) {
	cfg, ok := releaseConfigs[r]
	return cfg, ok
}

package models

// Policy holds one owner's content rules: which catalog providers are enabled
// and the allow/block lists applied to search results. All list entries are
// matched as case-insensitive substrings. Stored under "policy:<ownerID>".
type Policy struct {
	EnabledProviders map[string]bool `json:"enabled_providers"`
	AllowArtists     []string        `json:"allow_artists"`
	BlockArtists     []string        `json:"block_artists"`
	AllowSongs       []string        `json:"allow_songs"`
	BlockSongs       []string        `json:"block_songs"`
	BlockGenres      []string        `json:"block_genres"`
}

// DefaultPolicy enables both catalog providers and blocks nothing.
func DefaultPolicy() Policy {
	return Policy{
		EnabledProviders: map[string]bool{"spotify": true, "apple": true},
		AllowArtists:     []string{},
		BlockArtists:     []string{},
		AllowSongs:       []string{},
		BlockSongs:       []string{},
		BlockGenres:      []string{},
	}
}

// ProviderEnabled reports whether a provider is switched on. A nil map means
// the owner never saved a policy, which counts as everything enabled.
func (p Policy) ProviderEnabled(name string) bool {
	if p.EnabledProviders == nil {
		return true
	}
	return p.EnabledProviders[name]
}

// Package policy applies an owner's allow/block lists to candidate tracks.
// Apply is pure: same input, same output, no store or clock access.
package policy

import (
	"strings"

	"github.com/jukevox/backend/internal/models"
)

// MaxResults caps the filtered list returned to clients.
const MaxResults = 25

// Apply filters tracks against the policy with fixed precedence:
//
//  1. allowArtists, when non-empty, is exclusive: only matching artists survive
//  2. allowSongs, when non-empty, is exclusive on title
//  3. blockArtists drops matches
//  4. blockSongs drops matches
//  5. blockGenres drops matches; tracks without a genre are never dropped here
//
// All matching is case-insensitive substring. The survivors are deduplicated
// by (title, artist), first occurrence wins, and capped at MaxResults.
func Apply(tracks []models.Track, p models.Policy) []models.Track {
	filtered := tracks

	if len(p.AllowArtists) > 0 {
		filtered = keep(filtered, func(t models.Track) bool {
			return matchesAny(t.Artist, p.AllowArtists)
		})
	}
	if len(p.AllowSongs) > 0 {
		filtered = keep(filtered, func(t models.Track) bool {
			return matchesAny(t.Title, p.AllowSongs)
		})
	}
	if len(p.BlockArtists) > 0 {
		filtered = keep(filtered, func(t models.Track) bool {
			return !matchesAny(t.Artist, p.BlockArtists)
		})
	}
	if len(p.BlockSongs) > 0 {
		filtered = keep(filtered, func(t models.Track) bool {
			return !matchesAny(t.Title, p.BlockSongs)
		})
	}
	if len(p.BlockGenres) > 0 {
		filtered = keep(filtered, func(t models.Track) bool {
			return t.Genre == "" || !matchesAny(t.Genre, p.BlockGenres)
		})
	}

	seen := make(map[string]bool, len(filtered))
	unique := make([]models.Track, 0, len(filtered))
	for _, t := range filtered {
		key := strings.ToLower(t.Title) + "|" + strings.ToLower(t.Artist)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
		if len(unique) >= MaxResults {
			break
		}
	}
	return unique
}

func keep(tracks []models.Track, pred func(models.Track) bool) []models.Track {
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func matchesAny(value string, patterns []string) bool {
	v := strings.ToLower(value)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if strings.Contains(v, strings.ToLower(pat)) {
			return true
		}
	}
	return false
}

// Package rates loads the crew roster and pay-rate assignments from a YAML
// file and serves them to the calculation engine.
package rates

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/slateworks/crewtime/internal/model"
)

// CrewMember is one roster entry with its per-production rate assignments.
type CrewMember struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Department  string       `yaml:"department,omitempty"`
	Assignments []Assignment `yaml:"productions"`
}

// Assignment binds a pay rate to one production.
type Assignment struct {
	Production string        `yaml:"production"`
	Rate       model.PayRate `yaml:",inline"`
}

// Roster is the top-level structure of the rates file.
type Roster struct {
	Crew []CrewMember `yaml:"crew"`
}

// Load parses a roster file.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, err
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("parsing rates file %s: %w", path, err)
	}
	return r, nil
}

// Lookup finds the rate for a crew member on a production, or nil if none
// is configured.
func (r Roster) Lookup(crewID, production string) *model.PayRate {
	for _, member := range r.Crew {
		if member.ID != crewID {
			continue
		}
		for _, a := range member.Assignments {
			if a.Production == production {
				rate := a.Rate
				return &rate
			}
		}
	}
	return nil
}

// Member returns the roster entry for a crew ID, or nil.
func (r Roster) Member(crewID string) *CrewMember {
	for i := range r.Crew {
		if r.Crew[i].ID == crewID {
			return &r.Crew[i]
		}
	}
	return nil
}

// FileSource is an engine.RateSource reading the rates file on every lookup,
// so edits to the file take effect without restarting anything.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for the given rates file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Lookup implements engine.RateSource. A missing rates file or an unmatched
// (crew, production) pair yields (nil, nil); unreadable or malformed files
// are infrastructure errors and propagate.
func (s *FileSource) Lookup(ctx context.Context, crewID, production string) (*model.PayRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roster, err := Load(s.Path)
	if os.IsNotExist(err) {
		log.Debug().Str("path", s.Path).Msg("no rates file; treating all rates as unconfigured")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rate := roster.Lookup(crewID, production)
	if rate == nil {
		log.Debug().
			Str("crew", crewID).
			Str("production", production).
			Msg("no rate assignment found")
	}
	return rate, nil
}

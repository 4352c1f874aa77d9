// Package library holds the curated fragment and linker collections used by
// the candidate generator.  The collections are fixed, ordered, and pure data;
// sampling and assembly live in the generator.
package library

import (
	"strings"

	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/pkg/errors"
)

// curatedFragments are the built-in core ring systems.
var curatedFragments = []string{
	"c1ccccc1",   // benzene
	"c1cnccc1",   // pyridine
	"c1cncnc1",   // pyrimidine
	"c1ccncc1",   // pyridine (alternate attachment)
	"c1cocc1",    // furan
	"c1c[nH]cc1", // pyrrole
	"c1cscc1",    // thiophene
	"c1cnoc1",    // isoxazole
	"c1cnnc1",    // pyrazole
	"c1cncc1",    // imidazole-type ring
}

// curatedLinkers are the built-in linking groups.  "NH" never parses on its
// own; slots that draw it fail every assembly pattern and are dropped.
var curatedLinkers = []string{
	"C",      // methylene
	"CC",     // ethylene
	"C=O",    // carbonyl
	"C1CC1",  // cyclopropyl
	"C1CCC1", // cyclobutyl
	"O",      // ether oxygen
	"S",      // thioether sulfur
	"N",      // amine nitrogen
	"NH",     // amine (not standalone-parseable)
	"C=C",    // vinylene
	"C#C",    // acetylene
	"C1COC1", // oxetane
}

// Library is an immutable pair of ordered fragment and linker collections.
type Library struct {
	fragments []string
	linkers   []string
}

// Curated returns the built-in library.
func Curated() *Library {
	return &Library{fragments: curatedFragments, linkers: curatedLinkers}
}

// New builds a library from caller-supplied collections.  Entries are
// whitespace-trimmed; empty entries and empty collections are rejected.
func New(fragments, linkers []string) (*Library, error) {
	cleanFragments, err := cleanEntries("fragment", fragments)
	if err != nil {
		return nil, err
	}
	cleanLinkers, err := cleanEntries("linker", linkers)
	if err != nil {
		return nil, err
	}
	return &Library{fragments: cleanFragments, linkers: cleanLinkers}, nil
}

func cleanEntries(kind string, entries []string) ([]string, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeLibraryEmpty, kind+" collection is empty")
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		trimmed := strings.TrimSpace(e)
		if trimmed == "" {
			return nil, errors.New(errors.ErrCodeLibraryInvalid, "blank "+kind+" entry")
		}
		out = append(out, trimmed)
	}
	return out, nil
}

// WithOverrides returns a library where non-empty override slices replace the
// corresponding curated collection.  Used to apply config-supplied libraries.
func WithOverrides(fragments, linkers []string) (*Library, error) {
	base := Curated()
	if len(fragments) == 0 {
		fragments = base.fragments
	}
	if len(linkers) == 0 {
		linkers = base.linkers
	}
	return New(fragments, linkers)
}

// Fragments returns a copy of the ordered fragment collection.
func (l *Library) Fragments() []string {
	return append([]string(nil), l.fragments...)
}

// Linkers returns a copy of the ordered linker collection.
func (l *Library) Linkers() []string {
	return append([]string(nil), l.linkers...)
}

// ValidationReport lists library entries the toolkit cannot parse standalone.
// Unparseable linkers are legal but inert: any slot that draws one fails all
// of its patterns and is dropped.
type ValidationReport struct {
	InvalidFragments []string
	InvalidLinkers   []string
}

// Clean reports whether every entry parsed.
func (r ValidationReport) Clean() bool {
	return len(r.InvalidFragments) == 0 && len(r.InvalidLinkers) == 0
}

// Validate parses each entry in isolation and reports the failures.
// Called once at startup; callers decide whether unparseable entries are
// fatal (typically: fragments yes, linkers warn-only).
func (l *Library) Validate(tk chem.Toolkit) ValidationReport {
	var report ValidationReport
	for _, f := range l.fragments {
		if _, err := tk.Parse(f); err != nil {
			report.InvalidFragments = append(report.InvalidFragments, f)
		}
	}
	for _, lk := range l.linkers {
		if _, err := tk.Parse(lk); err != nil {
			report.InvalidLinkers = append(report.InvalidLinkers, lk)
		}
	}
	return report
}

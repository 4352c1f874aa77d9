// Package molecule defines the molecule-domain Data Transfer Objects and
// request/response structures used across every layer of MolForge.  No domain
// logic lives here — only plain data types that are safe to import from any
// layer without creating circular dependencies.
package molecule

import "fmt"

// Descriptors is the set of scalar physicochemical properties computed for
// every accepted molecule.  Only Weight participates in the drug-likeness
// gate; the remaining values are reported but never filter acceptance.
type Descriptors struct {
	// Weight is the molecular weight in Daltons.
	Weight float64 `json:"mol_wt"`

	// LogP is the estimated octanol/water partition coefficient.
	LogP float64 `json:"logp"`

	// TPSA is the topological polar surface area in Å².
	TPSA float64 `json:"tpsa"`

	// HAcceptors is the hydrogen-bond acceptor count.
	HAcceptors int `json:"h_acceptors"`

	// HDonors is the hydrogen-bond donor count.
	HDonors int `json:"h_donors"`
}

// Drug-likeness weight window.  Bounds are inclusive on both sides.
const (
	MinDrugLikeWeight = 150.0
	MaxDrugLikeWeight = 500.0
)

// IsDrugLike reports whether the molecular weight lies inside the acceptance
// window.  No other descriptor is consulted.
func (d Descriptors) IsDrugLike() bool {
	return d.Weight >= MinDrugLikeWeight && d.Weight <= MaxDrugLikeWeight
}

// RecordDTO is one accepted molecule in a generation run as exposed to the
// presentation layer.  ID is the stable ordinal identifier ("MOL_<n>",
// 1-based, dense, assigned in acceptance order).
type RecordDTO struct {
	ID          string      `json:"molecule_id"`
	SMILES      string      `json:"smiles"`
	Descriptors Descriptors `json:"descriptors"`
}

// MoleculeID formats the dense ordinal identifier for the n-th accepted
// molecule (1-based).
func MoleculeID(n int) string {
	return fmt.Sprintf("MOL_%d", n)
}

// GenerateRequest carries the parameters of one generation run.  Fragments
// and Linkers are optional overrides of the curated library; when empty the
// server-side library is used.
type GenerateRequest struct {
	Count     int      `json:"count"`
	Seed      *int64   `json:"seed,omitempty"`
	Fragments []string `json:"fragments,omitempty"`
	Linkers   []string `json:"linkers,omitempty"`
}

// GenerateResponse is the outcome of one generation run.  An empty Molecules
// slice is a normal, reportable outcome, not an error; Message then carries
// the informational text surfaced to the user.
type GenerateResponse struct {
	RunID     string      `json:"run_id"`
	Requested int         `json:"requested"`
	Generated int         `json:"generated"`
	Molecules []RecordDTO `json:"molecules"`
	Message   string      `json:"message,omitempty"`
}

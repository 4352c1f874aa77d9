package chem

import (
	"fmt"
	"strings"

	"github.com/turtacn/molforge/pkg/errors"
)

// parser is a single-pass recursive SMILES reader covering the organic subset
// used by the fragment and linker libraries: unbracketed B/C/N/O/P/S/F/Cl/Br/I,
// aromatic lowercase forms, bracket atoms with isotope/hydrogen/charge,
// branches, ring bond closures (including %nn), explicit bonds and dot-
// separated components.  Stereo bond symbols ("/" and "\") are accepted and
// read as single bonds; chirality markers inside brackets are accepted and
// discarded.
type parser struct {
	input string
	pos   int

	atoms []Atom
	bonds []Bond

	// prev is the index of the atom the next atom will bond to, or -1 at the
	// start of the string and after a dot.
	prev int

	// pendingBond holds an explicit bond symbol awaiting its right-hand atom.
	pendingBond    BondOrder
	hasPendingBond bool

	branchStack []int

	// openRings maps a ring closure number to its opening half.
	openRings map[int]ringOpening
}

type ringOpening struct {
	atom     int
	order    BondOrder
	hasOrder bool
	aromatic bool
}

// ParseSMILES parses and valence-validates a SMILES string.
func ParseSMILES(smiles string) (*Molecule, error) {
	trimmed := strings.TrimSpace(smiles)
	if trimmed == "" {
		return nil, errors.New(errors.ErrCodeInvalidSMILES, "empty SMILES string")
	}

	p := &parser{
		input:     trimmed,
		prev:      -1,
		openRings: make(map[int]ringOpening),
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	mol := &Molecule{SMILES: smiles, Atoms: p.atoms, Bonds: p.bonds}
	if err := assignHydrogens(mol); err != nil {
		return nil, err
	}
	return mol, nil
}

func (p *parser) run() error {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf(errors.ErrCodeInvalidSMILES, "branch opened before any atom")
			}
			p.branchStack = append(p.branchStack, p.prev)
			p.pos++

		case c == ')':
			if len(p.branchStack) == 0 {
				return p.errorf(errors.ErrCodeInvalidSMILES, "unmatched closing parenthesis")
			}
			p.prev = p.branchStack[len(p.branchStack)-1]
			p.branchStack = p.branchStack[:len(p.branchStack)-1]
			p.pos++

		case c == '-' || c == '/' || c == '\\':
			p.setPendingBond(BondSingle)
			p.pos++

		case c == '=':
			p.setPendingBond(BondDouble)
			p.pos++

		case c == '#':
			p.setPendingBond(BondTriple)
			p.pos++

		case c == ':':
			p.setPendingBond(BondAromatic)
			p.pos++

		case c == '.':
			if p.hasPendingBond {
				return p.errorf(errors.ErrCodeInvalidSMILES, "bond symbol before dot separator")
			}
			p.prev = -1
			p.pos++

		case c >= '0' && c <= '9':
			if err := p.ringClosure(int(c - '0')); err != nil {
				return err
			}
			p.pos++

		case c == '%':
			if err := p.percentRingClosure(); err != nil {
				return err
			}

		case c == '[':
			atom, err := p.bracketAtom()
			if err != nil {
				return err
			}
			p.addAtom(atom)

		case c == 'H':
			// Bare hydrogen is only legal inside brackets.
			return p.errorf(errors.ErrCodeInvalidSMILES, "hydrogen outside of brackets")

		default:
			atom, ok := p.organicSubsetAtom()
			if !ok {
				return p.errorf(errors.ErrCodeInvalidSMILES, "unexpected character %q", c)
			}
			p.addAtom(atom)
		}
	}

	if len(p.branchStack) != 0 {
		return p.errorf(errors.ErrCodeInvalidSMILES, "unclosed branch")
	}
	if p.hasPendingBond {
		return p.errorf(errors.ErrCodeInvalidSMILES, "dangling bond symbol at end of input")
	}
	if len(p.openRings) != 0 {
		return p.errorf(errors.ErrCodeRingClosure, "%d unclosed ring bond(s)", len(p.openRings))
	}
	if len(p.atoms) == 0 {
		return p.errorf(errors.ErrCodeInvalidSMILES, "no atoms")
	}
	return nil
}

func (p *parser) setPendingBond(order BondOrder) {
	p.pendingBond = order
	p.hasPendingBond = true
}

func (p *parser) takePendingBond() (BondOrder, bool) {
	if !p.hasPendingBond {
		return 0, false
	}
	p.hasPendingBond = false
	return p.pendingBond, true
}

// organicSubsetAtom reads an unbracketed atom at the current position.
// Two-letter symbols (Cl, Br) are matched before single letters.
func (p *parser) organicSubsetAtom() (Atom, bool) {
	rest := p.input[p.pos:]
	switch {
	case strings.HasPrefix(rest, "Cl"):
		p.pos += 2
		return Atom{Symbol: "Cl"}, true
	case strings.HasPrefix(rest, "Br"):
		p.pos += 2
		return Atom{Symbol: "Br"}, true
	}

	c := rest[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		p.pos++
		return Atom{Symbol: string(c)}, true
	case 'b', 'c', 'n', 'o', 'p', 's':
		p.pos++
		return Atom{Symbol: strings.ToUpper(string(c)), Aromatic: true}, true
	}
	return Atom{}, false
}

// bracketAtom reads a full bracket expression starting at '['.
func (p *parser) bracketAtom() (Atom, error) {
	start := p.pos
	end := strings.IndexByte(p.input[start:], ']')
	if end < 0 {
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "unterminated bracket atom")
	}
	body := p.input[start+1 : start+end]
	p.pos = start + end + 1

	if body == "" {
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "empty bracket atom")
	}

	atom := Atom{HSpecified: true}
	i := 0

	// Isotope.
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		atom.Isotope = atom.Isotope*10 + int(body[i]-'0')
		i++
	}
	if i >= len(body) {
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "bracket atom %q has no element", body)
	}

	// Element symbol; lowercase first letter means aromatic.
	c := body[i]
	switch {
	case c >= 'A' && c <= 'Z':
		symbol := string(c)
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			two := symbol + string(body[i])
			if _, ok := atomicMass[two]; ok {
				symbol = two
				i++
			}
		}
		atom.Symbol = symbol
	case c >= 'a' && c <= 'z':
		atom.Symbol = strings.ToUpper(string(c))
		atom.Aromatic = true
		i++
		if !aromaticElements[atom.Symbol] {
			return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "element %q cannot be aromatic", atom.Symbol)
		}
	default:
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "bad element in bracket atom %q", body)
	}

	// Hydrogens are tracked as counts on heavy atoms, never as graph nodes,
	// so a lone [H] is outside the supported subset.
	if _, ok := atomicMass[atom.Symbol]; !ok {
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "unsupported element %q", atom.Symbol)
	}

	// Chirality markers are read and discarded.
	for i < len(body) && body[i] == '@' {
		i++
	}

	// Hydrogen count.
	if i < len(body) && body[i] == 'H' {
		i++
		atom.ExplicitH = 1
		if i < len(body) && body[i] >= '0' && body[i] <= '9' {
			atom.ExplicitH = int(body[i] - '0')
			i++
		}
	}

	// Charge: +, -, ++, +2, -2 and so on.
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		magnitude := 0
		for i < len(body) && (body[i] == '+' || body[i] == '-') {
			magnitude++
			i++
		}
		if i < len(body) && body[i] >= '0' && body[i] <= '9' {
			magnitude = int(body[i] - '0')
			i++
		}
		atom.Charge = sign * magnitude
	}

	if i != len(body) {
		return Atom{}, p.errorf(errors.ErrCodeInvalidSMILES, "trailing characters in bracket atom %q", body)
	}
	return atom, nil
}

// addAtom appends the atom and bonds it to the previous atom in the chain.
func (p *parser) addAtom(atom Atom) {
	idx := len(p.atoms)
	p.atoms = append(p.atoms, atom)

	if p.prev >= 0 {
		order, explicit := p.takePendingBond()
		if !explicit {
			order = BondSingle
			if atom.Aromatic && p.atoms[p.prev].Aromatic {
				order = BondAromatic
			}
		}
		p.bonds = append(p.bonds, Bond{From: p.prev, To: idx, Order: order})
	} else {
		// Discard any stereo bond left over before a fresh component.
		p.takePendingBond()
	}
	p.prev = idx
}

// ringClosure handles a single-digit ring bond number.
func (p *parser) ringClosure(number int) error {
	if p.prev < 0 {
		return p.errorf(errors.ErrCodeRingClosure, "ring closure before any atom")
	}

	order, hasOrder := p.takePendingBond()

	opening, open := p.openRings[number]
	if !open {
		p.openRings[number] = ringOpening{
			atom:     p.prev,
			order:    order,
			hasOrder: hasOrder,
			aromatic: p.atoms[p.prev].Aromatic,
		}
		return nil
	}
	delete(p.openRings, number)

	if opening.atom == p.prev {
		return p.errorf(errors.ErrCodeRingClosure, "ring bond %d closes onto its own atom", number)
	}

	final := BondSingle
	switch {
	case hasOrder:
		final = order
	case opening.hasOrder:
		final = opening.order
	case opening.aromatic && p.atoms[p.prev].Aromatic:
		final = BondAromatic
	}

	p.bonds = append(p.bonds, Bond{From: opening.atom, To: p.prev, Order: final})
	return nil
}

// percentRingClosure handles the %nn two-digit ring bond form.
func (p *parser) percentRingClosure() error {
	if p.pos+2 >= len(p.input) {
		return p.errorf(errors.ErrCodeRingClosure, "truncated %%nn ring closure")
	}
	d1, d2 := p.input[p.pos+1], p.input[p.pos+2]
	if d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
		return p.errorf(errors.ErrCodeRingClosure, "malformed %%nn ring closure")
	}
	p.pos += 3
	return p.ringClosure(int(d1-'0')*10 + int(d2-'0'))
}

func (p *parser) errorf(code errors.ErrorCode, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.New(code, msg).
		WithDetail(fmt.Sprintf("input %q at offset %d", p.input, p.pos))
}

// ─────────────────────────────────────────────────────────────────────────────
// Hydrogen Assignment and Valence Validation
// ─────────────────────────────────────────────────────────────────────────────

// assignHydrogens computes implicit hydrogen counts and rejects atoms whose
// bonding exceeds every allowed valence for their element and charge.
//
// Aromatic atoms reserve one valence unit for the delocalised ring system, so
// an aromatic carbon with two ring neighbours carries exactly one hydrogen.
// Aromatic heteroatoms whose ring bonds already saturate an allowed valence
// donate a lone pair instead of a bond: furan's oxygen and thiophene's
// sulfur carry no reserve and no hydrogen.
func assignHydrogens(mol *Molecule) error {
	for i := range mol.Atoms {
		atom := &mol.Atoms[i]
		bondSum := mol.bondOrderSum(i)

		valences := effectiveValences(atom.Symbol, atom.Charge)
		if len(valences) == 0 {
			return errors.New(errors.ErrCodeValenceViolation,
				fmt.Sprintf("no allowed valence for %s with charge %+d", atom.Symbol, atom.Charge)).
				WithDetail(mol.SMILES)
		}
		maxValence := valences[len(valences)-1]

		aromaticReserve := 0
		if atom.Aromatic {
			aromaticReserve = 1
			for _, v := range valences {
				if bondSum == v {
					aromaticReserve = 0
					break
				}
			}
		}

		if atom.HSpecified {
			if bondSum+atom.ExplicitH > maxValence {
				return valenceError(mol, atom, bondSum+atom.ExplicitH, maxValence)
			}
			continue
		}

		if bondSum+aromaticReserve > maxValence {
			return valenceError(mol, atom, bondSum+aromaticReserve, maxValence)
		}

		// Smallest allowed valence that accommodates the bond order sum.
		target := maxValence
		for _, v := range valences {
			if v >= bondSum+aromaticReserve {
				target = v
				break
			}
		}

		atom.ImplicitH = target - bondSum - aromaticReserve
		if atom.ImplicitH < 0 {
			atom.ImplicitH = 0
		}
	}
	return nil
}

func valenceError(mol *Molecule, atom *Atom, total, max int) error {
	return errors.New(errors.ErrCodeValenceViolation,
		fmt.Sprintf("valence %d on %s exceeds maximum %d", total, atom.Symbol, max)).
		WithDetail(mol.SMILES)
}

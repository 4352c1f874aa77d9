package chem

// ─────────────────────────────────────────────────────────────────────────────
// Molecular Weight
// ─────────────────────────────────────────────────────────────────────────────

// MolecularWeight returns the average molecular weight in Daltons, summing
// heavy atom masses and all attached hydrogens.
func MolecularWeight(mol *Molecule) float64 {
	total := 0.0
	for _, atom := range mol.Atoms {
		total += atomicMass[atom.Symbol]
		total += float64(atom.HydrogenCount()) * hydrogenMass
	}
	return total
}

// ─────────────────────────────────────────────────────────────────────────────
// LogP (Crippen-style atom contributions)
// ─────────────────────────────────────────────────────────────────────────────

// logPContribution returns the additive octanol/water partition contribution
// of a single heavy atom plus its hydrogens.  The values are a compact
// atom-typed approximation in the spirit of Wildman-Crippen: hydrophobic
// carbon and halogens contribute positively, polar heteroatoms negatively.
func logPContribution(mol *Molecule, i int) float64 {
	atom := mol.Atoms[i]
	h := float64(atom.HydrogenCount()) * 0.123

	switch atom.Symbol {
	case "C":
		if atom.Aromatic {
			return 0.294 + h
		}
		return 0.144 + h
	case "N":
		if atom.Aromatic {
			return -0.493 + h
		}
		return -0.600 + h
	case "O":
		if atom.Aromatic {
			return 0.105 + h
		}
		if mol.hasBondOfOrder(i, BondDouble) {
			return -0.274 + h
		}
		return -0.400 + h
	case "S":
		if atom.Aromatic {
			return 0.412 + h
		}
		return 0.255 + h
	case "P":
		return -0.447 + h
	case "B":
		return 0.051 + h
	case "F":
		return 0.137
	case "Cl":
		return 0.652
	case "Br":
		return 0.860
	case "I":
		return 1.189
	}
	return 0
}

// LogP returns an estimate of the octanol/water partition coefficient using
// per-atom contributions.
func LogP(mol *Molecule) float64 {
	total := 0.0
	for i := range mol.Atoms {
		total += logPContribution(mol, i)
	}
	return total
}

// ─────────────────────────────────────────────────────────────────────────────
// TPSA (Ertl fragment contributions)
// ─────────────────────────────────────────────────────────────────────────────

// tpsaContribution returns the Ertl polar surface area contribution of a
// nitrogen, oxygen or sulfur atom in square Angstroms.  Carbon, halogens and
// the remaining subset elements contribute nothing.
func tpsaContribution(mol *Molecule, i int) float64 {
	atom := mol.Atoms[i]
	h := atom.HydrogenCount()

	switch atom.Symbol {
	case "N":
		if atom.Aromatic {
			if h > 0 {
				return 15.79 // [nH]
			}
			return 12.89 // pyridine-type n
		}
		switch {
		case h >= 2:
			return 26.02 // primary amine
		case h == 1:
			return 12.03 // secondary amine
		case mol.hasBondOfOrder(i, BondTriple):
			return 23.79 // nitrile
		case mol.hasBondOfOrder(i, BondDouble):
			return 12.36 // imine
		default:
			return 3.24 // tertiary amine
		}
	case "O":
		if atom.Aromatic {
			return 13.14 // furan-type o
		}
		switch {
		case mol.hasBondOfOrder(i, BondDouble):
			return 17.07 // carbonyl
		case h >= 1:
			return 20.23 // hydroxyl
		default:
			return 9.23 // ether
		}
	case "S":
		if atom.Aromatic {
			return 28.24 // thiophene-type s
		}
		if h >= 1 {
			return 38.80 // thiol
		}
		return 25.30 // thioether
	}
	return 0
}

// TPSA returns the topological polar surface area in square Angstroms.
// Sulfur contributions are included, matching the extended Ertl scheme.
func TPSA(mol *Molecule) float64 {
	total := 0.0
	for i := range mol.Atoms {
		total += tpsaContribution(mol, i)
	}
	return total
}

// ─────────────────────────────────────────────────────────────────────────────
// Hydrogen Bonding Counts
// ─────────────────────────────────────────────────────────────────────────────

// HAcceptorCount returns the number of nitrogen and oxygen atoms.
func HAcceptorCount(mol *Molecule) int {
	n := 0
	for _, atom := range mol.Atoms {
		if atom.Symbol == "N" || atom.Symbol == "O" {
			n++
		}
	}
	return n
}

// HDonorCount returns the number of nitrogen and oxygen atoms carrying at
// least one hydrogen.
func HDonorCount(mol *Molecule) int {
	n := 0
	for _, atom := range mol.Atoms {
		if (atom.Symbol == "N" || atom.Symbol == "O") && atom.HydrogenCount() > 0 {
			n++
		}
	}
	return n
}

package chem

// hydrogenMass is the average atomic mass of hydrogen in Daltons.
const hydrogenMass = 1.008

// atomicMass maps element symbols in the supported organic subset to their
// standard average atomic masses in Daltons.
var atomicMass = map[string]float64{
	"B":  10.811,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"P":  30.974,
	"S":  32.06,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.904,
}

// defaultValences lists the allowed valences for each organic-subset element,
// in ascending order.  Implicit hydrogen assignment uses the smallest valence
// that accommodates the atom's bond order sum; exceeding the largest is a
// valence violation.
var defaultValences = map[string][]int{
	"B":  {3},
	"C":  {4},
	"N":  {3, 5},
	"O":  {2},
	"P":  {3, 5},
	"S":  {2, 4, 6},
	"F":  {1},
	"Cl": {1},
	"Br": {1},
	"I":  {1},
}

// aromaticElements is the set of elements that may be written in lowercase
// aromatic form.
var aromaticElements = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
}

// effectiveValences returns the allowed valences for an atom after applying
// its formal charge.  A +1 nitrogen accepts four bonds, a -1 oxygen one.
func effectiveValences(symbol string, charge int) []int {
	base, ok := defaultValences[symbol]
	if !ok {
		return nil
	}
	if charge == 0 {
		return base
	}
	out := make([]int, 0, len(base))
	for _, v := range base {
		if adjusted := v + charge; adjusted >= 0 {
			out = append(out, adjusted)
		}
	}
	return out
}

package formula

// periods lists element symbols row by row.
var periods = [][]string{
	{"H", "He"},
	{"Li", "Be", "B", "C", "N", "O", "F", "Ne"},
	{"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar"},
	{"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr"},
	{"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe"},
	{"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn"},
}

// electrons holds the valence electron count for each entry of periods.
var electrons = [][]int{
	{7, 8},
	{1, 2, 3, 4, 5, 6, 7, 8},
	{1, 2, 3, 4, 5, 6, 7, 8},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 4, 5, 6, 7, 8},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 4, 5, 6, 7, 8},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 4, 5, 6, 7, 8},
}

// Element is one entry of the periodic table as the solver sees it.
type Element struct {
	Symbol    string
	Period    int // 1-based row
	Electrons int // valence electrons, hydrogen counted as 7
	Valence   int // valence used for bonding
	Charge    int // positive for metals modelled as cations
}

var table = buildTable()

func buildTable() map[string]Element {
	m := make(map[string]Element)
	for i, row := range periods {
		for j, sym := range row {
			n := electrons[i][j]
			e := Element{Symbol: sym, Period: i + 1, Electrons: n, Valence: n}
			if n < 4 {
				e.Valence = 8 - n
				e.Charge = n
			}
			m[sym] = e
		}
	}
	return m
}

// Lookup returns the element with the given symbol.
func Lookup(symbol string) (Element, bool) {
	e, ok := table[symbol]
	return e, ok
}

// Symbols returns every known symbol in periodic table order.
func Symbols() []string {
	var out []string
	for _, row := range periods {
		out = append(out, row...)
	}
	return out
}

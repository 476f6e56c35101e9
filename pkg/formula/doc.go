// Package formula turns molecular formulas such as "C2H6O" into the atoms
// the solver works on.
//
// Every element of the first six periods is known. Main-group atoms carry
// their valence electron count, with hydrogen counted as 7 so that a single
// bond completes its shell like any other atom. Atoms with fewer than four
// valence electrons (alkali and alkaline earth metals, group 13 and the
// transition metals) are modelled as cations: their valence becomes
// 8 minus the electron count and the difference is stored as a positive
// formal charge. Bonds to them are later reported as ionic by the solver.
//
//	atoms, err := formula.Parse("NaCl")
//	// Na: valence 7, charge +1
//	// Cl: valence 7
package formula

// Package chem defines the data model shared by the bond solver, the layout
// engine and the renderers.
//
// # Atoms
//
// An [Atom] is identified by a small integer [ID] that is stable for the
// lifetime of a solve. Its Valence is the number of valence electrons, with
// hydrogen counted as 7 so that every atom follows the octet rule: an atom
// must form exactly [Atom.Need] bond orders (8 - Valence).
//
// Synthetic atoms are introduced by the solver to turn one problem into
// another. Their [Role] tells which transformation created them:
//
//   - [RoleSink]: an extra electron that is later removed (anions)
//   - [RoleSource]: a missing electron pair that is funnelled away (cations)
//   - [RoleBoundary]: a ring start or end marker
//
// # Slots and branches
//
// A [Molecule] is a list of [Slot] values. A slot is either an [Atom] or a
// [*Branch], which is a collapsed sub-molecule behaving as a single atom of
// need Multiplicity. Branches nest arbitrarily deep.
//
// # Solutions
//
// A [Solution] is the bond list the solver emits together with the table of
// real atoms (carrying their final formal charges). Display names are not
// part of the identity of an atom; use [Names] to render them.
package chem

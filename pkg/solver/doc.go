// Package solver finds Lewis-style bond structures for a list of atoms.
//
// # Strategy
//
// [Solve] tries three strategies in order:
//
//  1. Tree solving. If one atom can bond to all the others (an origin),
//     the molecule is a star around it. Otherwise a sub-group that would be
//     an origin if it also bonded to one outside atom with order n (an
//     R-group, n = 1..3) is collapsed into a single [chem.Branch] of need n
//     and the search recurses on the smaller molecule.
//  2. Ring solving, for molecules of more than two atoms without a tree
//     solution. Two boundary atoms are added, the tree search runs, and the
//     bonds to the boundary atoms are spliced into one ring-closing bond.
//  3. Ionic resolution. Sink atoms (extra electrons) or source atoms
//     (missing electron pairs) are added for charges 1..MaxIonCharge, the
//     tree search runs, and the synthetic atoms are removed again while the
//     atoms they touched receive formal charges.
//
// # Enumeration
//
// Solutions are delivered to a callback one at a time. In [StopAfterFirst]
// mode the search ends at the first accepted solution and only the largest
// candidate of each R-group tier is collapsed. In [Continue] mode every
// tier and every candidate is explored; the number of solutions can grow
// quickly, so callers bound the enumeration by returning [ErrStop] from the
// callback or by cancelling the context.
package solver

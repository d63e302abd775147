// Package chem implements condensed transformation graphs for synthesis
// routes: atoms as vertices, bonds annotated with their reaction dynamics
// (unchanged, formed, broken, order-changed) as edges.
//
// The package provides the graph operations the clustering pipeline consumes:
// connected-component decomposition, induced substructures, an
// order-independent canonical signature, strategic-bond extraction, synthon
// decomposition with leaving-group separation, and reaction-record assembly.
//
// Graphs are immutable values once built. Every transforming operation
// (Substructure, CutAtBonds, WithoutAtoms, WithoutBonds, Decompose) returns a
// new graph and leaves the receiver untouched, so graphs can be shared freely
// across pipeline stages.
package chem

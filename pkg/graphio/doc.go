// Package graphio provides JSON import and export for transformation graphs
// and route collections.
//
// # JSON Format
//
// A graph is an object with two arrays:
//
//	{
//	  "atoms": [
//	    {"num": 1, "element": "C"},
//	    {"num": 2, "element": "O", "charge": -1}
//	  ],
//	  "bonds": [
//	    {"a1": 1, "a2": 2, "order": 1, "dynamics": "formed"}
//	  ]
//	}
//
// Atom numbers are the atom-map numbers and must be unique. The dynamics
// field takes "unchanged" (the default when omitted), "formed", "broken", or
// "order-changed".
//
// A route collection wraps one graph per route id:
//
//	{
//	  "routes": {
//	    "route-001": { "atoms": [...], "bonds": [...] }
//	  }
//	}
//
// Use [ReadGraph] and [WriteGraph] for streams, or [ImportGraph] and
// [ExportGraph] for files; [ReadRoutes] and friends mirror them for route
// collections. Readers validate structural constraints (unique atoms, known
// bond endpoints) and wrap failures with the atom or bond that caused them.
//
// The wire structs carry bson tags alongside json so stored reports reuse
// the same shape.
package graphio

// Package io reads export jobs from JSON.
//
// A job describes everything the modeling run knows about the system being
// deposited: the components and their sequences, how each residue range is
// represented, the restraints applied, the sampling protocols and the
// resulting models. [ReadJob] decodes and validates a job; [Job.Apply]
// replays it against an [export.Output] in dependency order.
//
// # Job Format
//
//	{
//	  "entry_id": "nup84",
//	  "components": [
//	    {"name": "Nup84", "modeled": true, "sequence": "MELSPTYQT..."}
//	  ],
//	  "fragments": [
//	    {"kind": "pdb", "component": "Nup84", "start": 7, "end": 488,
//	     "pdb": "data/nup84.pdb", "chain": "A", "rigid": true},
//	    {"kind": "beads", "component": "Nup84", "start": 489, "end": 726,
//	     "count": 24}
//	  ],
//	  "cross_links": [
//	    {"file": "data/xl.csv", "links": [
//	      {"sites": [{"component": "Nup84", "residue": 3},
//	                 {"component": "Nup84", "residue": 45}],
//	       "label": "DSS", "length": 21,
//	       "restraints": [{"by_residue": [true, false], "sigma": [1, 6], "psi": 0.05}]}
//	    ]}
//	  ],
//	  "em2d": [{"images": ["data/class1.pgm"], "resolution": 35, "pixel_size": 2.2,
//	            "image_resolution": 35, "projections": 10000}],
//	  "em3d": [{"emdb": "EMD-1234", "gaussians": 100}],
//	  "protocols": [{"monte_carlo": true, "frames": 5000}],
//	  "models": [{"group": "", "sites": [...]}],
//	  "analysis": {"output_dir": "output", "clusters": 2,
//	               "representatives": [{"cluster": 1, "sites": [...]}]}
//	}
//
// A site is either an atom ("atom" set) or a sphere:
//
//	{"x": 1.5, "y": 0, "z": -3.25, "residue_name": "MET", "chain": "A",
//	 "seq": 1, "residues": [1, 10], "radius": 4.2}
//
// Relative paths in a job read with [ImportJob] are resolved against the
// directory containing the job file.
//
// # Validation
//
// [ReadJob] rejects component names, sequences, chain identifiers and paths
// that do not pass the checks in package errors, unknown fragment kinds, and
// references to undeclared components. Errors name the offending item, for
// example "fragment 3 (Nup84)".
package io

// Package pkg provides the libraries behind ihmcif, which writes integrative
// structural models as PDBx/mmCIF documents using the IHM dictionary.
//
// # Overview
//
// A model is described by a job file (components, starting model fragments,
// restraints, protocols, models and clustering results) plus optional
// metadata (software, citations, deposition repositories). The pkg directory
// is organized into four main areas:
//
//  1. [cif] - The mmCIF text writer (categories, loops, value quoting)
//  2. [ihm] and [export] - Domain records and the dumpers that serialize them
//  3. [io] and [metadata] - Job and metadata file formats
//  4. [pipeline] - Orchestration (load → export → cache)
//
// # Architecture
//
// The typical data flow through ihmcif:
//
//	job.json + metadata.toml
//	         ↓
//	    [io] package (decode, validate, apply)
//	         ↓
//	    [export] package (registries + ordered dumpers)
//	         ↓
//	    [cif] package (category and loop writer)
//	         ↓
//	    mmCIF document
//
// # Quick Start
//
// Build a document directly:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/ihmcif/pkg/export"
//	    "github.com/matzehuels/ihmcif/pkg/ihm"
//	)
//
//	out := export.New(export.Options{EntryID: "rpb"})
//	out.AddComponent("Rpb1", true)
//	out.AddComponentSequence("Rpb1", "MSEAKLLQ")
//	out.AddBeadFragment(export.BeadFragment{Component: "Rpb1", Start: 1, End: 8, Count: 2})
//	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 100})
//	out.AddModel([]ihm.Site{{Chain: "A", ResidueIndex: 1, Residues: []int{1, 4}, Radius: 3}}, nil)
//	_ = out.Flush(os.Stdout)
//
// Or run a job through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	result, err := runner.Execute(ctx, pipeline.Options{JobPath: "job.json"})
//
// # Main Packages
//
// ## Serialization
//
// [cif] - Writes data blocks. Single-row categories become key/value pairs,
// multi-row categories become loops with a lazily written header. Values are
// quoted, folded or wrapped to stay within the configured line budgets.
//
// [dump] - The [dump.Dumper] interface: a finalize pass that assigns
// identifiers, then a dump pass that writes categories.
//
// [schema] - The reference graph between written categories, rendered as DOT
// or SVG through Graphviz.
//
// ## Domain
//
// [ihm] - Records: entities, assemblies, datasets, starting models,
// restraints, protocols, models and ensembles.
//
// [registry] - Deduplicating, ordered collections that hand out identifiers.
//
// [provenance] - Classifies PDB-format starting models as experimental,
// comparative or unknown from their header records.
//
// [export] - The [export.Output] facade and the ordered dumper list.
//
// ## Input
//
// [io] - The JSON job format.
//
// [metadata] - The TOML metadata format.
//
// ## Infrastructure
//
// [pipeline] - Validated options, the [pipeline.Runner] and cached results.
//
// [cache] - Content-addressed document cache with null and file backends.
//
// [observability] - Hooks around loading, exporting and cache access.
//
// [errors] - Coded errors and input validators.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/cif/...       # Specific package
//	go test -run Example ./...  # Examples only
//
// [cif]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/cif
// [dump]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/dump
// [dump.Dumper]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/dump#Dumper
// [schema]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/schema
// [ihm]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/ihm
// [registry]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/registry
// [provenance]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/provenance
// [export]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/export
// [export.Output]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/export#Output
// [io]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/io
// [metadata]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/metadata
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ihmcif/pkg/buildinfo
package pkg

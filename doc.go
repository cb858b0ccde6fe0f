// Package meshkit implements the Node/DataType/Schema kernel for
// describing, validating, and transforming hierarchical scientific
// mesh data: a self-describing in-memory tree whose leaves are typed
// numeric arrays or scalars.
//
// A Node owns its data in exactly one of three states: it holds an
// owned buffer it allocated, it aliases a buffer the caller owns
// (external), or it is an interior node whose children carry the data.
// Typed access goes through generic Accessor views (package
// internal/core) that coerce on read per a fixed promotion table.
//
// The Mesh Blueprint conventions layer — structural verification of
// coordsets/topologies/matsets/fields/adjsets/nestsets, conversion
// between coordinate-set and topology flavors, derived-topology
// generation, and the distributed partition driver — lives in the
// sibling blueprint, topology, and partition packages.
package meshkit

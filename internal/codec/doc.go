// Package codec reads and writes topology documents as JSON, YAML or TOML.
//
// All formats share one shape: a list of nodes and a list of links. A
// document may instead carry a flat list of elements, in which case links
// are synthesized by chaining elements within and across network domains.
package codec

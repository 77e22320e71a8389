// Package output defines the adapter contract shared by every output format
// together with the plumbing adapters have in common: the per-invocation
// Context, destination resolution (output file vs. default stream), the
// project-then-capitalize step, and a registry of adapter factories keyed by
// format name. Concrete formats live under pkg/adapters.
package output

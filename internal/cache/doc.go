// Package cache records what bondgen generated, so unchanged inputs can be
// skipped on the next run.
//
// The manifest is a SQLite database with two tables:
//
//   - generations: one row per (input, target, output directory) holding the
//     input and constants digests, target options, tool version and the run
//     that produced it
//   - artifacts: the name and sha256 of every file a generation wrote
//
// A generation is fresh when its fingerprint matches the current inputs and
// every recorded artifact is still on disk with the recorded digest.
package cache

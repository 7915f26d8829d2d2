// Package testutil holds helpers shared by the package tests: golden file
// assertions, schema fixture lookup, and deterministic run ids and clocks for
// the generation manifest.
package testutil

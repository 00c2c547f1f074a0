// Package stats derives corpus-level and model-level statistics for a bundle.
//
// ComputeCorpus and ComputeModel are pure: they read their inputs and return
// sorted results without touching any store. Engine runs them against a
// bundle's stores and persists the results into write-once repositories.
package stats

// Package importer runs an import of a topic model and its training corpus
// into a bundle.
//
// A Pipeline moves through a fixed sequence of stages:
//
//	Provisioning -> Staging -> ComputingCorpusStats -> NormalizingModel -> ComputingModelStats -> Done
//
// The first failing stage ends the run in Failed with a *StageError naming
// that stage. There are no retries and nothing but provisioning is rolled
// back. A subsystem is marked available in the bundle's registry only after
// every store it depends on has been written and closed, so a failed run
// never leaves a subsystem marked ready with missing data.
//
// An existing bundle is skipped unless the request asks to overwrite it.
package importer

// Package segment turns corpus text into the sentence stream stored with a
// bundle.
//
// Corpus text holds one document per line as "docID<TAB>content". The derived
// sentence stream holds one sentence per line as
// "docID<TAB>sentenceIndex<TAB>sentence". Both transforms are pure and
// deterministic: the same input always yields byte-identical output.
package segment

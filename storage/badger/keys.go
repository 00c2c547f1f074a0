package badger

import (
	"encoding/binary"

	"github.com/poiesic/termite/core"
)

// Key prefixes for different data types.
// Each bundle store is its own badger database; prefixes only need to be
// unique within one store.
const (
	topicPrefix      = "ldatop:"
	termWeightPrefix = "ldatw:"
	docTopicPrefix   = "ldadt:"

	corpusDocPrefix  = "csdoc:"
	corpusTermPrefix = "csterm:"
	corpusPairPrefix = "cspair:"

	modelTopicPrefix = "mstopic:"
	modelTermPrefix  = "msterm:"

	sealedKey = "sealed"
)

// makeKey appends big-endian encoded parts to prefix.
// BigEndian keeps lexicographic key order equal to numeric order.
func makeKey(prefix string, parts ...uint64) []byte {
	buf := make([]byte, len(prefix)+8*len(parts))
	offset := copy(buf, prefix)
	for _, p := range parts {
		binary.BigEndian.PutUint64(buf[offset:], p)
		offset += 8
	}
	return buf
}

// makeTopicKey generates a key for a topic by index.
func makeTopicKey(topic int) []byte {
	return makeKey(topicPrefix, uint64(topic))
}

// makeTermWeightKey generates a composite key for a term weight.
// Format: prefix:topic:termID
func makeTermWeightKey(topic int, term string) []byte {
	return makeKey(termWeightPrefix, uint64(topic), uint64(core.IDFromContent(term)))
}

// makeDocTopicKey generates a composite key for a document-topic weight.
// Format: prefix:docIndex:topic
func makeDocTopicKey(docIndex, topic int) []byte {
	return makeKey(docTopicPrefix, uint64(docIndex), uint64(topic))
}

func makeCorpusDocKey(index int) []byte {
	return makeKey(corpusDocPrefix, uint64(index))
}

func makeCorpusTermKey(term string) []byte {
	return makeKey(corpusTermPrefix, uint64(core.IDFromContent(term)))
}

func makeCorpusPairKey(termA, termB string) []byte {
	return makeKey(corpusPairPrefix, uint64(core.IDFromContent(termA)), uint64(core.IDFromContent(termB)))
}

func makeModelTopicKey(topic int) []byte {
	return makeKey(modelTopicPrefix, uint64(topic))
}

func makeModelTermKey(term string) []byte {
	return makeKey(modelTermPrefix, uint64(core.IDFromContent(term)))
}

package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/model/mallet"
	"github.com/poiesic/termite/storage/sqlite"
)

var testSentences = []string{
	"The river bank flooded after the rain.",
	"Money at the bank earns a low rate.",
	"A boat drifted along the shore.",
	"Water rose over the river shore.",
	"The loan rate went up again.",
}

// WriteTestSources writes a complete set of import sources under root: a
// MALLET model with numTopics topics over numDocs documents, a corpus.txt
// with matching document IDs and an empty corpus.db.
// Intended for tests.
func WriteTestSources(root, name string, numTopics, numDocs int) (core.ImportRequest, error) {
	req := core.ImportRequest{
		Name:         name,
		ModelPath:    filepath.Join(root, "model"),
		CorpusPath:   filepath.Join(root, "corpus"),
		DatabasePath: filepath.Join(root, "db"),
	}

	if err := mallet.WriteTestModel(req.ModelPath, numTopics, numDocs); err != nil {
		return req, err
	}

	var corpus strings.Builder
	for d := 0; d < numDocs; d++ {
		a := testSentences[d%len(testSentences)]
		b := testSentences[(d+1)%len(testSentences)]
		fmt.Fprintf(&corpus, "doc%d\t%s %s\n", d, a, b)
	}
	if err := os.MkdirAll(req.CorpusPath, 0755); err != nil {
		return req, err
	}
	if err := os.WriteFile(req.CorpusFile(), []byte(corpus.String()), 0644); err != nil {
		return req, err
	}

	if err := os.MkdirAll(req.DatabasePath, 0755); err != nil {
		return req, err
	}
	store, err := sqlite.Open(req.DatabaseFile())
	if err != nil {
		return req, err
	}
	return req, store.Close()
}

package mallet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testVocabulary supplies the terms of generated test models.
var testVocabulary = []string{"river", "bank", "money", "water", "loan", "boat", "rate", "shore"}

// WriteTestModel writes a small, deterministic MALLET export with numTopics
// topics and numDocs documents into dir, creating it if needed.
// Intended for tests.
func WriteTestModel(dir string, numTopics, numDocs int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var keys, weights, docs strings.Builder
	for t := 0; t < numTopics; t++ {
		top := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			top = append(top, testVocabulary[(t+i)%len(testVocabulary)])
		}
		fmt.Fprintf(&keys, "%d\t%g\t%s\n", t, 0.1*float64(t+1), strings.Join(top, " "))
		for i, term := range testVocabulary {
			fmt.Fprintf(&weights, "%d\t%s\t%d\n", t, term, 1+(t+i)%len(testVocabulary))
		}
	}

	docs.WriteString("#doc name topic proportion ...\n")
	for d := 0; d < numDocs; d++ {
		fmt.Fprintf(&docs, "%d\tdoc%d", d, d)
		for t := 0; t < numTopics; t++ {
			p := 1.0 / float64(numTopics)
			if numTopics > 1 {
				// one dominant topic per document
				if t == d%numTopics {
					p = 0.5
				} else {
					p = 0.5 / float64(numTopics-1)
				}
			}
			fmt.Fprintf(&docs, "\t%g", p)
		}
		docs.WriteString("\n")
	}

	files := map[string]string{
		TopicKeysFile:        keys.String(),
		TopicWordWeightsFile: weights.String(),
		DocTopicsFile:        docs.String(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

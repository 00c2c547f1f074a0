// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// DocStats holds document-level corpus statistics.
type DocStats struct {
	Index       int
	DocID       string
	Tokens      int
	UniqueTerms int
	Sentences   int
}

// CorpusTermStats holds term-level corpus statistics.
type CorpusTermStats struct {
	Term         string
	Frequency    int     // Total occurrences across the corpus
	DocFrequency int     // Number of documents containing the term
	Probability  float64 // Frequency / total tokens
}

// Cooccurrence records how often two terms appear in the same sentence.
// TermA always sorts before TermB.
type Cooccurrence struct {
	TermA     string
	TermB     string
	Sentences int
	PMI       float64 // Pointwise mutual information over sentences
}

// TopicStats holds topic-level model statistics.
type TopicStats struct {
	Topic      int
	TermWeight float64 // Sum of term weights assigned to the topic
	DocWeight  float64 // Sum of document proportions assigned to the topic
	Prevalence float64 // DocWeight / sum of DocWeight over all topics
	TopTerms   []string
}

// ModelTermStats holds term-level model statistics.
type ModelTermStats struct {
	Term            string
	Frequency       float64 // Sum of the term's weights over all topics
	Distinctiveness float64 // KL(P(T|w) || P(T))
	Saliency        float64 // P(w) * Distinctiveness
}

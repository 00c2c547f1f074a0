package storage

import (
	"testing"

	"github.com/poiesic/termite/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("topic")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Encode(core.IDMUS, tt.id)
			require.NotEmpty(t, data)

			decoded, err := Decode[core.ID](core.IDMUS, data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := Decode[core.Topic](core.TopicMUS, []byte{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("truncated topic stats", func(t *testing.T) {
		data := Encode(core.TopicStatsMUS, core.TopicStats{
			Topic:    1,
			TopTerms: []string{"alpha", "beta"},
		})
		_, err := Decode[core.TopicStats](core.TopicStatsMUS, data[:len(data)-2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := Encode(core.TermWeightMUS, core.TermWeight{Topic: 1, Term: "x", Weight: 1})
		data = append(data, 0x01)
		_, err := Decode[core.TermWeight](core.TermWeightMUS, data)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestRoundTripStatsRecords(t *testing.T) {
	topic := core.TopicStats{
		Topic:      2,
		TermWeight: 14.5,
		DocWeight:  3.25,
		Prevalence: 0.4,
		TopTerms:   []string{"river", "bank", "water"},
	}
	decodedTopic, err := Decode[core.TopicStats](core.TopicStatsMUS, Encode(core.TopicStatsMUS, topic))
	require.NoError(t, err)
	assert.Equal(t, topic, decodedTopic)

	doc := core.DocStats{Index: 9, DocID: "doc-9", Tokens: 120, UniqueTerms: 80, Sentences: 7}
	decodedDoc, err := Decode[core.DocStats](core.DocStatsMUS, Encode(core.DocStatsMUS, doc))
	require.NoError(t, err)
	assert.Equal(t, doc, decodedDoc)

	pair := core.Cooccurrence{TermA: "bank", TermB: "river", Sentences: 3, PMI: -0.5}
	decodedPair, err := Decode[core.Cooccurrence](core.CooccurrenceMUS, Encode(core.CooccurrenceMUS, pair))
	require.NoError(t, err)
	assert.Equal(t, pair, decodedPair)
}

func TestRoundTripModelRecords(t *testing.T) {
	topic := core.Topic{Index: 4, Alpha: 0.05, Label: "river bank water"}
	decodedTopic, err := Decode[core.Topic](core.TopicMUS, Encode(core.TopicMUS, topic))
	require.NoError(t, err)
	assert.Equal(t, topic, decodedTopic)

	assignment := core.DocTopic{DocIndex: 7, DocID: "doc7", Topic: 2, Weight: 0.125}
	decodedAssignment, err := Decode[core.DocTopic](core.DocTopicMUS, Encode(core.DocTopicMUS, assignment))
	require.NoError(t, err)
	assert.Equal(t, assignment, decodedAssignment)

	term := core.ModelTermStats{Term: "river", Frequency: 3.5, Distinctiveness: 0.75, Saliency: 0.2}
	decodedTerm, err := Decode[core.ModelTermStats](core.ModelTermStatsMUS, Encode(core.ModelTermStatsMUS, term))
	require.NoError(t, err)
	assert.Equal(t, term, decodedTerm)
}

func TestSkipConsumesWholeRecord(t *testing.T) {
	stats := core.TopicStats{Topic: 1, TermWeight: 2, DocWeight: 3, Prevalence: 0.5, TopTerms: []string{"a", "bb"}}
	data := Encode(core.TopicStatsMUS, stats)
	n, err := core.TopicStatsMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	_, err = core.TopicStatsMUS.Skip(data[:len(data)-1])
	assert.Error(t, err)
}

package segmentation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mece-segments/pkg/models"
)

func buildSegments(sizes map[string]int) ([]*Segment, map[string]string) {
	assignments := make(map[string]string)
	var segments []*Segment
	i := 0
	for _, name := range []string{SegHighAOV, SegRecentCustomers, SegOtherBucket} {
		n, ok := sizes[name]
		if !ok {
			continue
		}
		seg := &Segment{Name: name}
		for j := 0; j < n; j++ {
			u := models.User{UserID: fmt.Sprintf("u_%05d", i)}
			i++
			seg.Members = append(seg.Members, u)
			assignments[u.UserID] = name
		}
		segments = append(segments, seg)
	}
	return segments, assignments
}

// Scénario C : un segment de 499 membres (min=500) fusionne intégralement
// dans le repli, disparaît de la liste active, et le repli grossit d'exactement 499.
func TestApplySizePolicy_MergeUndersized(t *testing.T) {
	segments, assignments := buildSegments(map[string]int{
		SegHighAOV:         499,
		SegRecentCustomers: 600,
		SegOtherBucket:     100,
	})

	active := ApplySizePolicy(segments, assignments, SegOtherBucket, 500, 20000, false)

	names := make([]string, 0, len(active))
	var fallback *Segment
	for _, s := range active {
		names = append(names, s.Name)
		if s.Name == SegOtherBucket {
			fallback = s
		}
	}
	assert.NotContains(t, names, SegHighAOV, "merged segment must leave the active list")
	require.NotNil(t, fallback)
	assert.Equal(t, 100+499, len(fallback.Members), "fallback must grow by exactly 499")

	// La carte d'assignation suit la fusion.
	for _, m := range fallback.Members {
		assert.Equal(t, SegOtherBucket, assignments[m.UserID])
	}
}

func TestApplySizePolicy_FallbackExemptFromFloor(t *testing.T) {
	segments, assignments := buildSegments(map[string]int{
		SegRecentCustomers: 600,
		SegOtherBucket:     3, // sous le plancher, mais jamais fusionné
	})

	active := ApplySizePolicy(segments, assignments, SegOtherBucket, 500, 20000, false)

	require.Len(t, active, 2)
	for _, s := range active {
		if s.Name == SegOtherBucket {
			assert.Equal(t, 3, len(s.Members))
			assert.True(t, s.Valid, "fallback under the floor stays valid")
		}
	}
}

func TestApplySizePolicy_OversizedFlaggedNotSplit(t *testing.T) {
	segments, assignments := buildSegments(map[string]int{
		SegRecentCustomers: 700,
		SegOtherBucket:     10,
	})

	active := ApplySizePolicy(segments, assignments, SegOtherBucket, 500, 650, false)

	for _, s := range active {
		if s.Name == SegRecentCustomers {
			assert.True(t, s.Oversized, "segment above the ceiling must be flagged")
			assert.False(t, s.Valid)
			assert.Equal(t, 700, len(s.Members), "advisory ceiling must never split a segment")
		}
	}
}

func TestApplySizePolicy_MergePreservesTotal(t *testing.T) {
	segments, assignments := buildSegments(map[string]int{
		SegHighAOV:         20,
		SegRecentCustomers: 600,
		SegOtherBucket:     50,
	})
	before := 0
	for _, s := range segments {
		before += len(s.Members)
	}

	active := ApplySizePolicy(segments, assignments, SegOtherBucket, 500, 20000, false)

	after := 0
	for _, s := range active {
		after += len(s.Members)
	}
	assert.Equal(t, before, after, "merges must never lose or duplicate members")
}

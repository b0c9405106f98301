package segmentation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mece-segments/pkg/models"
)

func TestValidateMECE_PassOnConstructedPartition(t *testing.T) {
	universe := makeUniverse(300, func(i int, u *models.User) {
		u.AvgOrderValue = float64(10 + i*3)
		u.EngagementScore = float64((i * 7) % 100)
		u.DaysSinceLastOrder = i % 100
	})
	th, err := ComputeThresholds(universe, false)
	require.NoError(t, err)

	segments, _ := Partition(universe, DefaultRules(), th, false)
	assert.NoError(t, ValidateMECE(universe, segments), "a constructed partition must always validate")
}

func TestValidateMECE_ReportsOverlapPairs(t *testing.T) {
	universe := makeUniverse(3, nil)
	shared := universe[1]
	segments := []*Segment{
		{Name: "A", Members: []models.User{universe[0], shared}},
		{Name: "B", Members: []models.User{shared, universe[2]}},
	}

	err := ValidateMECE(universe, segments)
	require.Error(t, err)
	var violation *MECEViolationError
	require.True(t, errors.As(err, &violation))
	require.Len(t, violation.OverlapPairs, 1)
	assert.Equal(t, [2]string{"A", "B"}, violation.OverlapPairs[0])
}

func TestValidateMECE_ReportsSymmetricDifference(t *testing.T) {
	universe := makeUniverse(4, nil)
	stranger := models.User{UserID: "stranger"}
	segments := []*Segment{
		// universe[3] manquant, un inconnu en trop.
		{Name: "A", Members: []models.User{universe[0], universe[1]}},
		{Name: "B", Members: []models.User{universe[2], stranger}},
	}

	err := ValidateMECE(universe, segments)
	require.Error(t, err)
	var violation *MECEViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, []string{universe[3].UserID}, violation.MissingIDs)
	assert.Equal(t, []string{"stranger"}, violation.ExtraIDs)
}

func TestValidateMECE_CountMismatchDetected(t *testing.T) {
	universe := makeUniverse(2, nil)
	segments := []*Segment{
		// Doublon du même utilisateur au sein d'un segment : les ensembles
		// paraissent corrects mais l'identité de comptage casse.
		{Name: "A", Members: []models.User{universe[0], universe[0], universe[1]}},
	}

	err := ValidateMECE(universe, segments)
	require.Error(t, err)
	var violation *MECEViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, 3, violation.Assigned)
	assert.Equal(t, 2, violation.UniverseSize)
}

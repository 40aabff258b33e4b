package seed

import (
	"testing"
	"time"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(seed uint64) *Generator {
	g := NewGenerator(seed)
	g.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerator_Medic(t *testing.T) {
	g := fixedGenerator(1)
	for i := 0; i < 50; i++ {
		m := g.Medic()
		assert.NotEmpty(t, m.FullName)
		assert.Contains(t, Specialities, m.Speciality)
		assert.GreaterOrEqual(t, m.ExpYears, 1)
		assert.LessOrEqual(t, m.ExpYears, 20)
	}
}

func TestGenerator_Patient(t *testing.T) {
	g := fixedGenerator(2)
	for i := 0; i < 50; i++ {
		p := g.Patient()
		assert.NotEmpty(t, p.FullName)
		assert.Contains(t, SocialStatuses, p.SocialStatus)

		dob, err := time.Parse(model.DateLayout, p.DateOfBirth)
		require.NoError(t, err)
		assert.False(t, dob.After(g.now()))

		assert.GreaterOrEqual(t, p.PolicyNumber, int64(minPolicyNumber))
		assert.LessOrEqual(t, p.PolicyNumber, int64(maxPolicyNumber))
	}
}

func TestGenerator_PolicyNumbersUnique(t *testing.T) {
	g := fixedGenerator(3)
	seen := map[int64]bool{}
	for i := 0; i < 5000; i++ {
		n := g.PolicyNumber()
		require.False(t, seen[n], "duplicate policy number %d", n)
		seen[n] = true
	}
}

func TestGenerator_TreatmentWindow(t *testing.T) {
	g := fixedGenerator(4)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		tr := g.Treatment(7, 9)
		assert.Equal(t, uint(7), tr.PatientID)
		assert.Equal(t, uint(9), tr.MedicID)
		assert.NotEmpty(t, tr.Diagnosis)
		assert.Contains(t, CurrentStates, tr.CurrentState)

		start, err := time.Parse(model.DateLayout, tr.DateStart)
		require.NoError(t, err)
		end, err := time.Parse(model.DateLayout, tr.DateEnd)
		require.NoError(t, err)
		assert.False(t, start.Before(today.AddDate(0, 0, -30)))
		assert.False(t, start.After(today))
		assert.False(t, end.Before(today))
		assert.False(t, end.After(today.AddDate(0, 0, 30)))
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a, b := fixedGenerator(42), fixedGenerator(42)
	assert.Equal(t, a.Medic(), b.Medic())
	assert.Equal(t, a.Patient(), b.Patient())
}

func TestGenerator_Pick(t *testing.T) {
	g := fixedGenerator(5)
	ids := []uint{3, 5, 8}
	for i := 0; i < 20; i++ {
		assert.Contains(t, ids, g.Pick(ids))
	}
}

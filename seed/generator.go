// Package seed fills a hospital records database with randomized sample data.
package seed

import (
	"time"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/brianvoe/gofakeit/v7"
)

// Value lists sampled by the generator.
var (
	SocialStatuses = []string{"student", "employer", "temporarily unemployed", "invalid", "pensioner", "child"}
	CurrentStates  = []string{"moderate", "heavy condition", "sent to stationary", "died", "recovered", "discharged"}
	Specialities   = []string{
		"Cardiologist", "Neurologist", "Orthopedic Surgeon", "Pediatrician", "Ophthalmologist",
		"Dermatologist", "Gastroenterologist", "Endocrinologist", "Oncologist", "Urologist",
		"Pulmonologist", "Rheumatologist", "Neurologist", "Hematologist", "Infectious Disease Specialist",
	}
)

// Policy numbers are six digit.
const (
	minPolicyNumber = 100000
	maxPolicyNumber = 999999
)

// Generator builds request bodies for medics, patients and treatments.
// It is not safe for concurrent use.
type Generator struct {
	faker        *gofakeit.Faker
	now          func() time.Time
	usedPolicies map[int64]struct{}
}

// NewGenerator returns a generator; a zero seed picks a random one.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		faker:        gofakeit.New(seed),
		now:          time.Now,
		usedPolicies: map[int64]struct{}{},
	}
}

func (g *Generator) Medic() model.MedicRequest {
	return model.MedicRequest{
		FullName:   g.faker.Name(),
		Speciality: g.faker.RandomString(Specialities),
		ExpYears:   g.faker.Number(1, 20),
	}
}

func (g *Generator) Patient() model.PatientRequest {
	now := g.now()
	dob := g.faker.DateRange(now.AddDate(-115, 0, 0), now)
	return model.PatientRequest{
		FullName:     g.faker.Name(),
		DateOfBirth:  dob.Format(model.DateLayout),
		PolicyNumber: g.PolicyNumber(),
		SocialStatus: g.faker.RandomString(SocialStatuses),
	}
}

// Treatment starts within the last 30 days and ends within the next 30 days.
func (g *Generator) Treatment(patientID, medicID uint) model.TreatmentRequest {
	now := g.now()
	start := g.faker.DateRange(now.AddDate(0, 0, -30), now)
	end := g.faker.DateRange(now, now.AddDate(0, 0, 30))
	return model.TreatmentRequest{
		Diagnosis:    g.faker.Word(),
		CurrentState: g.faker.RandomString(CurrentStates),
		DateStart:    start.Format(model.DateLayout),
		DateEnd:      end.Format(model.DateLayout),
		PatientID:    patientID,
		MedicID:      medicID,
	}
}

// PolicyNumber returns a six digit number not handed out before by this generator.
// It panics once the whole range is exhausted.
func (g *Generator) PolicyNumber() int64 {
	if len(g.usedPolicies) > maxPolicyNumber-minPolicyNumber {
		panic("seed: policy number range exhausted")
	}
	for {
		n := int64(g.faker.Number(minPolicyNumber, maxPolicyNumber))
		if _, taken := g.usedPolicies[n]; taken {
			continue
		}
		g.usedPolicies[n] = struct{}{}
		return n
	}
}

// Pick returns a random element of ids.
func (g *Generator) Pick(ids []uint) uint {
	return ids[g.faker.Number(0, len(ids)-1)]
}

package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/rs/zerolog/log"
)

// Options controls how much data Run generates.
type Options struct {
	Medics   int
	Patients int
	Seed     uint64
}

// Result counts what Run created.
type Result struct {
	Medics     int
	Patients   int
	Treatments int
}

// policy numbers already present in the target are retried this many times
const maxPolicyAttempts = 5

const progressEvery = 100

// Run creates the medics first, then every patient followed by one treatment
// assigned to a random medic among the created ones.
func Run(ctx context.Context, sink Sink, opts Options) (Result, error) {
	var res Result
	if opts.Patients > 0 && opts.Medics <= 0 {
		return res, fmt.Errorf("seed: at least one medic is needed to treat patients")
	}

	gen := NewGenerator(opts.Seed)

	medicIDs := make([]uint, 0, opts.Medics)
	for i := 0; i < opts.Medics; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		id, err := sink.CreateMedic(ctx, gen.Medic())
		if err != nil {
			return res, fmt.Errorf("create medic %d: %w", i+1, err)
		}
		medicIDs = append(medicIDs, id)
		res.Medics++
	}
	log.Info().Int("medics", res.Medics).Msg("medics created")

	for i := 0; i < opts.Patients; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		patientID, err := createPatient(ctx, sink, gen)
		if err != nil {
			return res, fmt.Errorf("create patient %d: %w", i+1, err)
		}
		res.Patients++

		if _, err := sink.CreateTreatment(ctx, gen.Treatment(patientID, gen.Pick(medicIDs))); err != nil {
			return res, fmt.Errorf("create treatment for patient %d: %w", patientID, err)
		}
		res.Treatments++

		if res.Patients%progressEvery == 0 {
			log.Info().Int("patients", res.Patients).Int("of", opts.Patients).Msg("seeding")
		}
	}

	log.Info().
		Int("medics", res.Medics).
		Int("patients", res.Patients).
		Int("treatments", res.Treatments).
		Msg("population completed")
	return res, nil
}

func createPatient(ctx context.Context, sink Sink, gen *Generator) (uint, error) {
	var err error
	for attempt := 0; attempt < maxPolicyAttempts; attempt++ {
		var id uint
		id, err = sink.CreatePatient(ctx, gen.Patient())
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, apperror.ErrConflict) {
			return 0, err
		}
		log.Debug().Err(err).Msg("policy number taken, retrying")
	}
	return 0, err
}

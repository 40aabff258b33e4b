package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Sink stores generated entities and reports the id they were given.
type Sink interface {
	CreateMedic(ctx context.Context, req model.MedicRequest) (uint, error)
	CreatePatient(ctx context.Context, req model.PatientRequest) (uint, error)
	CreateTreatment(ctx context.Context, req model.TreatmentRequest) (uint, error)
}

// DBSink writes straight through the repository layer.
type DBSink struct {
	DB *gorm.DB
}

func (s DBSink) CreateMedic(ctx context.Context, req model.MedicRequest) (uint, error) {
	m, err := repository.CreateMedic(s.DB.WithContext(ctx), req)
	return m.ID, err
}

func (s DBSink) CreatePatient(ctx context.Context, req model.PatientRequest) (uint, error) {
	p, err := repository.CreatePatient(s.DB.WithContext(ctx), req)
	return p.ID, err
}

func (s DBSink) CreateTreatment(ctx context.Context, req model.TreatmentRequest) (uint, error) {
	t, err := repository.CreateTreatment(s.DB.WithContext(ctx), req)
	return t.ID, err
}

// HTTPSink posts to a running API. Throttled writes (429) are retried after the
// server's Retry-After delay, up to MaxThrottleRetries times per entity.
type HTTPSink struct {
	BaseURL            string
	Client             *http.Client
	MaxThrottleRetries int

	// sleep waits out a Retry-After delay; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

const (
	defaultThrottleRetries = 5
	defaultRetryAfter      = time.Second
	maxRetryAfter          = 2 * time.Minute
)

// NewHTTPSink returns a sink for the API at baseURL.
func NewHTTPSink(baseURL string) *HTTPSink {
	return &HTTPSink{
		BaseURL:            strings.TrimRight(baseURL, "/"),
		Client:             &http.Client{Timeout: 10 * time.Second},
		MaxThrottleRetries: defaultThrottleRetries,
		sleep:              sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryAfter reads a delay given in seconds; anything else falls back to one second.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return defaultRetryAfter
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d
}

func (s *HTTPSink) CreateMedic(ctx context.Context, req model.MedicRequest) (uint, error) {
	return s.post(ctx, "/medic/", req)
}

func (s *HTTPSink) CreatePatient(ctx context.Context, req model.PatientRequest) (uint, error) {
	return s.post(ctx, "/patient/", req)
}

func (s *HTTPSink) CreateTreatment(ctx context.Context, req model.TreatmentRequest) (uint, error) {
	return s.post(ctx, "/treatment/", req)
}

type createdEnvelope struct {
	util.APIResponse
	Data struct {
		ID uint `json:"id"`
	} `json:"data"`
}

func (s *HTTPSink) post(ctx context.Context, route string, body interface{}) (uint, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	sleep := s.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	for attempt := 0; ; attempt++ {
		id, wait, err := s.postOnce(ctx, route, payload)
		if wait == 0 {
			return id, err
		}
		if attempt >= s.MaxThrottleRetries {
			return 0, fmt.Errorf("POST %s: still throttled after %d retries", route, attempt)
		}
		log.Debug().Str("route", route).Dur("retry_after", wait).Msg("throttled, waiting")
		if err := sleep(ctx, wait); err != nil {
			return 0, err
		}
	}
}

// postOnce sends one request. A non-zero wait means the API throttled it.
func (s *HTTPSink) postOnce(ctx context.Context, route string, payload []byte) (uint, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+route, bytes.NewReader(payload))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("POST %s: %w", route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, retryAfter(resp.Header.Get("Retry-After")), nil
	}

	var env createdEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return 0, 0, fmt.Errorf("POST %s: decode response: %w", route, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return env.Data.ID, 0, nil
	case resp.StatusCode == http.StatusNotFound:
		return 0, 0, &apperror.Error{Kind: apperror.ErrNotFound, Message: env.Msg}
	case resp.StatusCode == http.StatusBadRequest && env.Msg == "Policy number already registered":
		return 0, 0, apperror.Conflict(env.Msg, nil)
	case resp.StatusCode == http.StatusBadRequest:
		return 0, 0, apperror.BadRequest(env.Msg, nil)
	default:
		return 0, 0, fmt.Errorf("POST %s: status %d: %s", route, resp.StatusCode, env.Msg)
	}
}

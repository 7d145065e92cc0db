package triage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"covex/internal/kernel"
)

// Answer is a yes/no observation value.
type Answer string

// Allowed observation answers.
const (
	Yes Answer = "yes"
	No  Answer = "no"
)

// RiskLevel is the categorical severity a diagnosis carries.
type RiskLevel string

// Risk levels, from mildest to most severe. RiskUnknown marks the
// fallback result when no rule produced a diagnosis.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
	RiskUnknown  RiskLevel = "unknown"
)

// Patient is one subject's observation record: a unique name plus the
// six yes/no symptom observations.
type Patient struct {
	Name                string `yaml:"name"`
	Fever               Answer `yaml:"fever"`
	Cough               Answer `yaml:"cough"`
	BreathingDifficulty Answer `yaml:"breathing_difficulty"`
	Fatigue             Answer `yaml:"fatigue"`
	LossOfTasteSmell    Answer `yaml:"loss_of_taste_smell"`
	ContactWithPositive Answer `yaml:"contact_with_positive"`
}

// Diagnosis is the outcome of one assessment.
type Diagnosis struct {
	PatientName    string
	Result         string
	Recommendation string
	RiskLevel      RiskLevel
}

// InvalidInputError reports an observation value outside {yes, no} or a
// missing required field. It is returned before any fact is asserted,
// so a bad request never disturbs the working memory.
type InvalidInputError struct {
	Field string
	Value string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("triage: missing required field %q", e.Field)
	}
	return fmt.Sprintf("triage: field %q has invalid value %q (want yes or no)", e.Field, e.Value)
}

// System is the expert system: a kernel engine loaded with the fixed
// COVID-19 knowledge base. Diagnose calls are serialized internally:
// the engine's working memory is reset and repopulated per call, so
// concurrent callers either share one System (and queue) or construct
// one System each.
type System struct {
	mu            sync.Mutex
	engine        *kernel.Engine
	log           *zap.Logger
	maxIterations int
}

// Option configures a System.
type Option func(*System)

// WithLogger injects a logger; diagnoses are traced at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxIterations overrides the engine's fixpoint guard.
func WithMaxIterations(n int) Option {
	return func(s *System) {
		// Applied during New, before the engine is built.
		s.maxIterations = n
	}
}

// New builds the expert system. The knowledge base is validated at
// construction; a defective rule or template refuses to construct
// rather than producing a partially usable system.
func New(opts ...Option) (*System, error) {
	s := &System{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	rb, err := kernel.NewRuleBase(templates(), rules())
	if err != nil {
		return nil, fmt.Errorf("triage: building knowledge base: %w", err)
	}

	engineOpts := []kernel.Option{kernel.WithLogger(s.log)}
	if s.maxIterations > 0 {
		engineOpts = append(engineOpts, kernel.WithMaxIterations(s.maxIterations))
	}
	s.engine = kernel.NewEngine(rb, engineOpts...)
	return s, nil
}

// Diagnose runs one assessment: validates the observations, resets the
// working memory, asserts the patient fact, runs the rules to fixpoint,
// and reads back the diagnosis. When no rule produced one (a normal
// outcome, not an error) it returns the fallback result with
// RiskUnknown.
func (s *System) Diagnose(p Patient) (Diagnosis, error) {
	if err := validate(p); err != nil {
		return Diagnosis{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	log := s.log.With(zap.String("run_id", runID))
	log.Debug("starting diagnosis", zap.String("patient", p.Name))

	s.engine.Reset()
	if _, err := s.engine.Assert(tmplPatient, map[string]kernel.Value{
		slotName:                kernel.String(p.Name),
		slotFever:               kernel.Symbol(string(p.Fever)),
		slotCough:               kernel.Symbol(string(p.Cough)),
		slotBreathingDifficulty: kernel.Symbol(string(p.BreathingDifficulty)),
		slotFatigue:             kernel.Symbol(string(p.Fatigue)),
		slotLossOfTasteSmell:    kernel.Symbol(string(p.LossOfTasteSmell)),
		slotContactWithPositive: kernel.Symbol(string(p.ContactWithPositive)),
	}); err != nil {
		// Validation above makes this unreachable; reset so a kernel
		// defect cannot leave a half-asserted observation behind.
		s.engine.Reset()
		return Diagnosis{}, fmt.Errorf("triage: asserting observation: %w", err)
	}

	fired, err := s.engine.Run()
	if err != nil {
		return Diagnosis{}, err
	}
	log.Debug("inference complete", zap.Int("fired", fired))

	matches := s.engine.Store().Query(tmplDiagnosis, map[string]kernel.Value{
		slotPatientName: kernel.String(p.Name),
	})
	if len(matches) == 0 {
		return Diagnosis{
			PatientName:    p.Name,
			Result:         "Unable to diagnose",
			Recommendation: "Please consult a healthcare professional",
			RiskLevel:      RiskUnknown,
		}, nil
	}

	return diagnosisFromFact(matches[0]), nil
}

func diagnosisFromFact(f kernel.Fact) Diagnosis {
	name, _ := f.Value(slotPatientName)
	result, _ := f.Value(slotResult)
	rec, _ := f.Value(slotRecommendation)
	risk, _ := f.Value(slotRiskLevel)
	return Diagnosis{
		PatientName:    name.Text(),
		Result:         result.Text(),
		Recommendation: rec.Text(),
		RiskLevel:      RiskLevel(risk.Text()),
	}
}

// validate checks the observation record before anything touches the
// working memory.
func validate(p Patient) error {
	if p.Name == "" {
		return &InvalidInputError{Field: "name"}
	}
	fields := []struct {
		name  string
		value Answer
	}{
		{"fever", p.Fever},
		{"cough", p.Cough},
		{"breathing_difficulty", p.BreathingDifficulty},
		{"fatigue", p.Fatigue},
		{"loss_of_taste_smell", p.LossOfTasteSmell},
		{"contact_with_positive", p.ContactWithPositive},
	}
	for _, f := range fields {
		if f.value == "" {
			return &InvalidInputError{Field: f.name}
		}
		if f.value != Yes && f.value != No {
			return &InvalidInputError{Field: f.name, Value: string(f.value)}
		}
	}
	return nil
}

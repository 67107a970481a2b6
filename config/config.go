// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvstat/family"
	"github.com/katalvlaran/lvstat/glm"
	"github.com/katalvlaran/lvstat/lm"
	"github.com/katalvlaran/lvstat/matrix"
)

// Model kinds.
const (
	KindLM  = "lm"
	KindGLM = "glm"
)

// FitConfig describes one model fit.
type FitConfig struct {
	Kind string `yaml:"kind" validate:"required,oneof=lm glm"`

	// Family and Link apply to glm only; empty selects gaussian and its default link.
	Family string `yaml:"family" validate:"omitempty,family"`
	Link   string `yaml:"link" validate:"omitempty,link"`

	// Intercept is tri-state: nil keeps the engine default.
	Intercept *bool `yaml:"intercept"`

	Epsilon float64 `yaml:"epsilon" validate:"omitempty,gt=0,finite"`
	MaxIter int     `yaml:"maxit" validate:"omitempty,gte=1"`

	Solver SolverConfig `yaml:"solver"`
}

// SolverConfig overrides the matrix tolerances. Zero fields keep the defaults.
type SolverConfig struct {
	SingularTol  float64 `yaml:"singular_tol" validate:"omitempty,gt=0,finite"`
	PivotTol     float64 `yaml:"pivot_tol" validate:"omitempty,gt=0,finite"`
	EigenTol     float64 `yaml:"eigen_tol" validate:"omitempty,gt=0,finite"`
	EigenMaxIter int     `yaml:"eigen_maxit" validate:"omitempty,gte=1"`
	RCond        float64 `yaml:"rcond" validate:"omitempty,gt=0,lt=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("family", func(fl validator.FieldLevel) bool {
		_, err := family.ParseKind(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("link", func(fl validator.FieldLevel) bool {
		_, err := family.ParseLink(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// Default returns an ordinary least-squares configuration.
func Default() FitConfig {
	return FitConfig{Kind: KindLM}
}

// Load reads and validates the YAML file at path.
func Load(path string) (FitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FitConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(data []byte) (FitConfig, error) {
	var c FitConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return FitConfig{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return FitConfig{}, err
	}

	return c, nil
}

// Validate checks field constraints and the family/link pairing.
func (c FitConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}

		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Kind {
	case KindLM:
		if c.Family != "" || c.Link != "" || c.Epsilon != 0 || c.MaxIter != 0 {
			return fmt.Errorf("%w: family, link, epsilon and maxit apply to glm only", ErrInvalidConfig)
		}
	case KindGLM:
		if _, err := c.family(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}

func (c FitConfig) family() (family.Family, error) {
	name := c.Family
	if name == "" {
		name = family.KindGaussian.String()
	}

	return family.Parse(name, c.Link)
}

// SolverOptions converts the tolerance overrides.
func (c FitConfig) SolverOptions() []matrix.Option {
	var opts []matrix.Option
	s := c.Solver
	if s.SingularTol != 0 {
		opts = append(opts, matrix.WithSingularTol(s.SingularTol))
	}
	if s.PivotTol != 0 {
		opts = append(opts, matrix.WithPivotTol(s.PivotTol))
	}
	if s.EigenTol != 0 {
		opts = append(opts, matrix.WithEigenTol(s.EigenTol))
	}
	if s.EigenMaxIter != 0 {
		opts = append(opts, matrix.WithEigenMaxIter(s.EigenMaxIter))
	}
	if s.RCond != 0 {
		opts = append(opts, matrix.WithRCond(s.RCond))
	}

	return opts
}

// LMOptions converts an lm configuration. A nil logger keeps the discarding default.
func (c FitConfig) LMOptions(logger *slog.Logger) ([]lm.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Kind != KindLM {
		return nil, fmt.Errorf("%w: %q is not %q", ErrKindMismatch, c.Kind, KindLM)
	}
	var opts []lm.Option
	if c.Intercept != nil {
		opts = append(opts, lm.WithIntercept(*c.Intercept))
	}
	if solver := c.SolverOptions(); len(solver) > 0 {
		opts = append(opts, lm.WithSolverOptions(solver...))
	}
	if logger != nil {
		opts = append(opts, lm.WithLogger(logger))
	}

	return opts, nil
}

// GLMOptions converts a glm configuration. A nil logger keeps the discarding default.
func (c FitConfig) GLMOptions(logger *slog.Logger) ([]glm.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Kind != KindGLM {
		return nil, fmt.Errorf("%w: %q is not %q", ErrKindMismatch, c.Kind, KindGLM)
	}
	fam, err := c.family()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opts := []glm.Option{glm.WithFamily(fam)}
	if c.Intercept != nil {
		opts = append(opts, glm.WithIntercept(*c.Intercept))
	}
	if c.Epsilon != 0 {
		opts = append(opts, glm.WithEpsilon(c.Epsilon))
	}
	if c.MaxIter != 0 {
		opts = append(opts, glm.WithMaxIter(c.MaxIter))
	}
	if solver := c.SolverOptions(); len(solver) > 0 {
		opts = append(opts, glm.WithSolverOptions(solver...))
	}
	if logger != nil {
		opts = append(opts, glm.WithLogger(logger))
	}

	return opts, nil
}

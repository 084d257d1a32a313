package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("weapon", "is required")
	ve.AddFieldError("spell_mod", "is invalid")
	ve.AddFieldErrorf("shrink", "must be at least %d", 0)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "weapon: is required")
	s.Assert().Contains(ve.Error(), "spell_mod: is invalid")
	s.Assert().Contains(ve.Error(), "shrink: must be at least 0")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("weapon", "is required").
		Fieldf("workers", "must be between %d and %d", 1, 64).
		RequiredField("Catalog").
		InvalidField("powders", "unknown powder \"x\"")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("workers", 0, 1, 64, vb)
	errors.ValidateRange("max_assign", 50, 0, 102, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["workers"][0], "must be between 1 and 64")
	s.Assert().NotContains(validationErrors, "max_assign")
}

func (s *ValidationTestSuite) TestValidateFraction() {
	vb := errors.NewValidationBuilder()
	errors.ValidateFraction("shrink", 1.2, vb)
	errors.ValidateFraction("ok", 0.95, vb)
	errors.ValidateNonNegative("sp_factor", -1, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors, "shrink")
	s.Assert().Contains(validationErrors, "sp_factor")
	s.Assert().NotContains(validationErrors, "ok")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowedBackends := []string{"bnb", "bruteforce"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("backend", "simplex", allowedBackends, vb)
	errors.ValidateEnum("fallback_backend", "bnb", allowedBackends, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["backend"][0], "must be one of: bnb, bruteforce")
	s.Assert().NotContains(validationErrors, "fallback_backend")
}

func (s *ValidationTestSuite) TestComplexValidation() {
	type profileInput struct {
		Weapon  string
		Backend string
		Workers int
		Caps    map[string]int
	}

	input := profileInput{
		Weapon:  "",
		Backend: "simplex",
		Workers: 0,
		Caps: map[string]int{
			"strength":  120,
			"dexterity": 40,
		},
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("weapon", input.Weapon, vb)
	errors.ValidateEnum("backend", input.Backend, []string{"bnb", "bruteforce"}, vb)
	errors.ValidateRange("workers", input.Workers, 1, 64, vb)
	for attr, value := range input.Caps {
		errors.ValidateRange(attr, value, 0, 102, vb)
	}

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors, "weapon")
	s.Assert().Contains(validationErrors, "backend")
	s.Assert().Contains(validationErrors, "workers")
	s.Assert().Contains(validationErrors, "strength")
	s.Assert().NotContains(validationErrors, "dexterity")
}

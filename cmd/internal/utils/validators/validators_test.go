package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type passwordForm struct {
	Password string `validate:"hasupper,haslower,hasdigit,hasspecial,nospaces,nodupes"`
}

type statusForm struct {
	Status string `validate:"bookingstatus"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"hasupper":      HasUpper,
		"haslower":      HasLower,
		"hasdigit":      HasDigit,
		"hasspecial":    HasSpecial,
		"nospaces":      NoWhiteSpaces,
		"nodupes":       NoDupes,
		"iso8601":       IsIso8601,
		"bookingstatus": IsBookingStatus,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("failed to register %s: %v", tag, err)
		}
	}
	return v
}

func TestPasswordRules(t *testing.T) {
	v := newValidate(t)

	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"Has Space1!", false},
		{"aaaaaaaa", false},
	}
	for _, tc := range cases {
		err := v.Struct(&passwordForm{Password: tc.password})
		if tc.ok && err != nil {
			t.Errorf("%q should pass, got %v", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%q should fail", tc.password)
		}
	}
}

func TestBookingStatusTag(t *testing.T) {
	v := newValidate(t)

	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if err := v.Struct(&statusForm{Status: status}); err != nil {
			t.Errorf("%q should pass, got %v", status, err)
		}
	}
	for _, status := range []string{"", "Pending", "done"} {
		if err := v.Struct(&statusForm{Status: status}); err == nil {
			t.Errorf("%q should fail", status)
		}
	}
}

func TestIsIso8601(t *testing.T) {
	v := newValidate(t)

	type form struct {
		At string `validate:"iso8601"`
	}
	if err := v.Struct(&form{At: "2026-04-02T10:30:00Z"}); err != nil {
		t.Errorf("RFC3339 timestamp should pass, got %v", err)
	}
	if err := v.Struct(&form{At: "02/04/2026"}); err == nil {
		t.Error("slash date should fail")
	}
}

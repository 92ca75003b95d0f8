package validator

import (
	"testing"
)

func TestValidator_IsValid_MatchingLanguage(t *testing.T) {
	v := New()

	ok, err := v.IsValid("This is a translation result written in clear English prose.", "en")
	if !ok {
		t.Errorf("expected valid, got error: %v", err)
	}
}

func TestValidator_IsValid_WrongLanguage(t *testing.T) {
	v := New()

	ok, err := v.IsValid("This text is very clearly written in the English language.", "pt")
	if ok {
		t.Error("expected validation failure for wrong language")
	}
	if err == nil {
		t.Error("expected error naming the language mismatch")
	}
}

func TestValidator_IsValid_ShortTextPasses(t *testing.T) {
	v := New()

	ok, err := v.IsValid("Olá", "pt")
	if !ok {
		t.Errorf("expected short text to pass without validation, got %v", err)
	}
}

func TestValidator_IsValid_EmptyFails(t *testing.T) {
	v := New()

	ok, _ := v.IsValid("   ", "pt")
	if ok {
		t.Error("expected empty translation to fail")
	}
}

func TestValidator_IsValid_NoTargetLang(t *testing.T) {
	v := New()

	ok, err := v.IsValid("anything at all", "")
	if !ok || err != nil {
		t.Errorf("expected pass when no target language set, got ok=%v err=%v", ok, err)
	}
}

func TestValidator_IsValid_CaseInsensitiveCode(t *testing.T) {
	v := New()

	ok, err := v.IsValid("This is a translation result written in clear English prose.", "EN")
	if !ok {
		t.Errorf("expected code comparison to ignore case, got %v", err)
	}
}

package segment

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func upper(ctx context.Context, text string) (string, error) {
	return strings.ToUpper(text), nil
}

func TestTranslate_PreservesWhitespace(t *testing.T) {
	got := Translate(context.Background(), upper, "  hello world  ")
	if got != "  HELLO WORLD  " {
		t.Errorf("expected exact whitespace preserved, got %q", got)
	}
}

func TestTranslate_WhitespaceOnly(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		if got := Translate(context.Background(), upper, input); got != input {
			t.Errorf("whitespace-only input %q changed to %q", input, got)
		}
	}
}

func TestTranslate_SkipsURLs(t *testing.T) {
	inputs := []string{
		"https://example.com/path",
		"visit http://example.com today",
		"contact us at someone@example.com",
	}
	for _, input := range inputs {
		if got := Translate(context.Background(), upper, input); got != input {
			t.Errorf("URL-like chunk %q changed to %q", input, got)
		}
	}
}

func TestTranslate_PreservesEntities(t *testing.T) {
	got := Translate(context.Background(), upper, "fish &amp; chips &#169; now")
	if got != "FISH &amp; CHIPS &#169; NOW" {
		t.Errorf("expected entities kept in position, got %q", got)
	}
}

func TestTranslate_SkipsSpecialChars(t *testing.T) {
	got := Translate(context.Background(), upper, " # ")
	if got != " # " {
		t.Errorf("expected lone special char untouched, got %q", got)
	}
}

func TestTranslate_MarkerTokensInterrupt(t *testing.T) {
	got := Translate(context.Background(), upper, "hello[PH0]world")
	if got != "HELLO[PH0]WORLD" {
		t.Errorf("expected tokens preserved and runs translated, got %q", got)
	}
}

func TestTranslate_ErrorDegradesToOriginal(t *testing.T) {
	failing := func(ctx context.Context, text string) (string, error) {
		return "", errors.New("service down")
	}
	input := "hello world"
	if got := Translate(context.Background(), failing, input); got != input {
		t.Errorf("expected original text on capability failure, got %q", got)
	}
}

func TestLooksLikeURL(t *testing.T) {
	if !LooksLikeURL("https://a.example") {
		t.Error("expected https URL detected")
	}
	if !LooksLikeURL("a@b.com") {
		t.Error("expected email detected")
	}
	if LooksLikeURL("plain words here") {
		t.Error("expected plain text not URL-like")
	}
}

package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMyMemoryService_Translate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "en|pt" {
			t.Errorf("expected langpair en|pt, got %q", got)
		}
		resp := map[string]interface{}{
			"responseData": map[string]interface{}{
				"translatedText": "Olá mundo",
				"match":          0.98,
			},
			"responseStatus": 200,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &MyMemoryService{
		baseURL: server.URL,
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello world",
		SourceLang: "en",
		TargetLang: "pt",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Olá mundo" {
		t.Errorf("expected 'Olá mundo', got %q", result.TranslatedText)
	}
	if result.Confidence != 0.98 {
		t.Errorf("expected confidence 0.98, got %f", result.Confidence)
	}
}

func TestMyMemoryService_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"responseStatus":  403,
			"responseDetails": "daily limit reached",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &MyMemoryService{
		baseURL: server.URL,
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "pt",
	})

	if err == nil {
		t.Error("expected error for non-200 response status")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestMyMemoryService_Translate_AutoDefaultsToEnglish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); !strings.HasPrefix(got, "en|") {
			t.Errorf("expected auto source to default to en, got %q", got)
		}
		resp := map[string]interface{}{
			"responseData":   map[string]interface{}{"translatedText": "Olá"},
			"responseStatus": 200,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &MyMemoryService{
		baseURL: server.URL,
		client:  server.Client(),
	}

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "auto",
		TargetLang: "pt",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMyMemoryService_Name(t *testing.T) {
	svc := NewMyMemoryService("")

	if svc.Name() != "mymemory" {
		t.Errorf("expected 'mymemory', got %q", svc.Name())
	}
}

func TestMyMemoryService_SupportedLanguages(t *testing.T) {
	svc := NewMyMemoryService("")

	langs, err := svc.SupportedLanguages(context.Background())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(langs) == 0 {
		t.Error("expected non-empty language list")
	}
}

func TestSystranService_Translate_NoAPIKey(t *testing.T) {
	svc := NewSystranService("")

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "fr",
	})

	if err == nil {
		t.Error("expected error when no API key")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestSystranService_Translate_ConfigKeyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "cfg-key" {
			t.Errorf("expected key from config, got %q", got)
		}
		resp := map[string]interface{}{
			"outputs": []map[string]interface{}{{"output": "Bonjour"}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &SystranService{
		baseURL: server.URL,
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{APIKey: "cfg-key"}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "fr",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Bonjour" {
		t.Errorf("expected 'Bonjour', got %q", result.TranslatedText)
	}
}

func TestSystranService_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Forbidden"))
	}))
	defer server.Close()

	svc := &SystranService{
		apiKey:  "test-key",
		baseURL: server.URL,
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "fr",
	})

	if err == nil {
		t.Error("expected error for non-OK status")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestSystranService_IsAvailable(t *testing.T) {
	if err := NewSystranService("").IsAvailable(context.Background()); err == nil {
		t.Error("expected error when no API key")
	}
	if err := NewSystranService("key").IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllamaTranslator_Translate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"response": "Olá",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &OllamaTranslator{
		baseURL: server.URL,
		models:  []string{"llama3.2"},
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "pt",
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Olá" {
		t.Errorf("expected 'Olá', got %q", result.TranslatedText)
	}
	if result.Metadata["model"] != "llama3.2" {
		t.Errorf("expected model in metadata, got %v", result.Metadata)
	}
}

func TestOllamaTranslator_Translate_PromptMentionsMarkers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		prompt, _ := req["prompt"].(string)
		if !strings.Contains(prompt, "[PHn]") {
			t.Errorf("expected marker preservation instruction in prompt, got %q", prompt)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"response": "ok text"})
	}))
	defer server.Close()

	svc := &OllamaTranslator{
		baseURL: server.URL,
		models:  []string{"llama3.2"},
		client:  server.Client(),
	}

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello [PH0] world",
		SourceLang: "en",
		TargetLang: "pt",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllamaTranslator_Translate_CleansArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"response": "Here is the translation: Olá mundo",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &OllamaTranslator{
		baseURL: server.URL,
		models:  []string{"llama3.2"},
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello world",
		SourceLang: "en",
		TargetLang: "pt",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Olá mundo" {
		t.Errorf("expected artifacts cleaned, got %q", result.TranslatedText)
	}
}

func TestOllamaTranslator_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := &OllamaTranslator{
		baseURL: server.URL,
		models:  []string{"llama3.2"},
		client:  server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "pt",
	})

	if err == nil {
		t.Error("expected error for non-OK status")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
}

func TestOllamaTranslator_IsAvailable_NotRunning(t *testing.T) {
	svc := &OllamaTranslator{
		baseURL: "http://localhost:19999",
		client:  &http.Client{Timeout: 100 * time.Millisecond},
	}

	if err := svc.IsAvailable(context.Background()); err == nil {
		t.Error("expected error when Ollama not available")
	}
}

func TestOllamaTranslator_SetModels(t *testing.T) {
	svc := NewOllamaTranslator("", []string{"llama3.2"})

	svc.SetModels([]string{"gemma2:2b", "qwen2.5:3b"})
	if got := svc.GetModels(); len(got) != 2 {
		t.Errorf("expected 2 models, got %d", len(got))
	}

	svc.SetModels(nil)
	if got := svc.GetModels(); len(got) != 2 {
		t.Errorf("expected empty update ignored, got %d models", len(got))
	}
}

func TestGoogleService_Name(t *testing.T) {
	svc := NewGoogleService()

	if svc.Name() != "google" {
		t.Errorf("expected 'google', got %q", svc.Name())
	}
}

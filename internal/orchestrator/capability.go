package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dfop02/lokyll/internal/chunker"
	"github.com/dfop02/lokyll/internal/segment"
	"github.com/dfop02/lokyll/internal/store"
	"github.com/dfop02/lokyll/internal/translator"
	"github.com/dfop02/lokyll/internal/validator"
)

// BuildConfig controls the translation capability assembled by BuildFunc.
type BuildConfig struct {
	// Chain configures the underlying service fallback chain.
	Chain Config
	// MaxChars caps the size of a single service request; longer texts are
	// split by the chunker and rejoined. ≤ 0 means unlimited.
	MaxChars int
	// Validate enables a one-time language check on the first sufficiently
	// long translation of the run.
	Validate bool
}

// BuildFunc assembles the chunk-level translation capability the document
// translators call through. The returned function handles memory lookups,
// oversize-chunk splitting and the service fallback chain; callers see
// plain text in, plain text out.
//
// Every service in the chain is checked up front against the requested
// language pair; an unsupported pair fails here rather than midway
// through a site. A nil mem disables the translation memory.
func BuildFunc(ctx context.Context, services []translator.TranslationService, svcCfg translator.ServiceConfig, bc BuildConfig, fromLang, toLang string, mem *store.Store) (segment.Func, error) {
	for _, svc := range services {
		if err := checkPair(ctx, svc, fromLang, toLang); err != nil {
			return nil, err
		}
	}

	orch := New(services, bc.Chain)

	var (
		val      *validator.Validator
		validate sync.Once
	)
	if bc.Validate {
		val = validator.New()
	}

	return func(ctx context.Context, text string) (string, error) {
		if mem != nil {
			cached, hit, err := mem.GetCachedTranslation(ctx, text, fromLang, toLang)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: translation memory lookup failed: %v\n", err)
			} else if hit {
				return cached, nil
			}
		}

		pieces := chunker.Chunk(text, bc.MaxChars)
		translated := make([]string, 0, len(pieces))
		serviceUsed := ""

		for _, piece := range pieces {
			res, err := orch.Translate(ctx, svcCfg, translator.TranslateRequest{
				Text:       piece,
				SourceLang: fromLang,
				TargetLang: toLang,
			})
			if err != nil {
				return "", err
			}
			translated = append(translated, res.TranslatedText)
			serviceUsed = res.ServiceName
		}

		result := strings.Join(translated, " ")

		if val != nil && len([]rune(result)) >= 20 {
			validate.Do(func() {
				if ok, err := val.IsValid(result, toLang); !ok {
					fmt.Fprintf(os.Stderr, "warning: translation output may be in the wrong language: %v\n", err)
				}
			})
		}

		if mem != nil {
			if err := mem.SaveToMemory(ctx, text, fromLang, toLang, result, serviceUsed); err != nil {
				fmt.Fprintf(os.Stderr, "warning: translation memory save failed: %v\n", err)
			}
		}

		return result, nil
	}, nil
}

// checkPair verifies svc can handle the requested language pair. A nil
// language list means the service is unconstrained. The source side is
// skipped for "auto" since the service will detect it.
func checkPair(ctx context.Context, svc translator.TranslationService, fromLang, toLang string) error {
	langs, err := svc.SupportedLanguages(ctx)
	if err != nil {
		return fmt.Errorf("%s: listing supported languages: %w", svc.Name(), err)
	}
	if langs == nil {
		return nil
	}

	if fromLang != "" && fromLang != "auto" && !containsLang(langs, fromLang) {
		return fmt.Errorf("%s does not support source language %q", svc.Name(), fromLang)
	}
	if !containsLang(langs, toLang) {
		return fmt.Errorf("%s does not support target language %q", svc.Name(), toLang)
	}
	return nil
}

func containsLang(langs []string, code string) bool {
	for _, l := range langs {
		if strings.EqualFold(l, code) {
			return true
		}
	}
	return false
}

// Package walker mirrors a site tree into a destination directory,
// translating content files and copying everything else byte for byte.
// One transformer handles each file; a transformer failure is logged and
// the file is copied through so a single bad page never kills a run.
package walker

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dfop02/lokyll/internal/htmldoc"
	"github.com/dfop02/lokyll/internal/jsdoc"
	"github.com/dfop02/lokyll/internal/mddoc"
	"github.com/dfop02/lokyll/internal/segment"
)

var (
	htmlExts = map[string]bool{".html": true, ".htm": true}
	mdExts   = map[string]bool{".md": true, ".markdown": true, ".mdx": true}
	jsExts   = map[string]bool{".js": true, ".mjs": true, ".ts": true}

	// copyAlways lists binary asset extensions that are never inspected.
	copyAlways = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".webp": true, ".svg": true, ".ico": true,
		".pdf": true, ".zip": true, ".gz": true, ".tgz": true,
		".bz2": true, ".xz": true,
		".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	}
)

// Config describes one translation run over a source tree.
type Config struct {
	Source          string
	Dest            string
	FromLang        string
	ToLang          string
	IncludeMarkdown bool
	TranslateJS     bool

	// SourceLabel is recorded in the summary document; it defaults to
	// Source but callers that cloned a repository pass the URL instead.
	SourceLabel string
}

// Walker translates a source tree into Config.Dest using the supplied
// chunk translation function.
type Walker struct {
	cfg Config
	fn  segment.Func
}

func New(cfg Config, fn segment.Func) *Walker {
	if cfg.SourceLabel == "" {
		cfg.SourceLabel = cfg.Source
	}
	return &Walker{cfg: cfg, fn: fn}
}

// Run walks the source tree and writes the mirrored, translated tree plus
// a summary document. Files are processed one at a time in walk order.
// Context cancellation stops between files; already-written output stays.
func (w *Walker) Run(ctx context.Context) error {
	total, err := countFiles(w.cfg.Source)
	if err != nil {
		return fmt.Errorf("scanning source tree: %w", err)
	}

	processed := 0
	start := time.Now()

	err = filepath.WalkDir(w.cfg.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(w.cfg.Source, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" && rel != "." {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(w.cfg.Dest, rel), 0o755)
		}

		processed++
		elapsed := time.Since(start).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(processed) / elapsed
		}
		fmt.Fprintf(os.Stderr, "\r\033[KTranslating... (%d/%d) [%.1fs, %.1f files/s] %s",
			processed, total, elapsed, rate, truncateName(d.Name()))

		if err := w.processFile(ctx, path, filepath.Join(w.cfg.Dest, rel)); err != nil {
			fmt.Fprintf(os.Stderr, "\nerror processing %s: %v\n", path, err)
			// the fallback copy can fail on the same unreadable file;
			// skip it rather than abort the whole run
			if err := copyFile(path, filepath.Join(w.cfg.Dest, rel)); err != nil {
				fmt.Fprintf(os.Stderr, "error copying %s: %v\n", path, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return err
	}

	fmt.Fprintf(os.Stderr, "\r\033[K✓ Translation complete! Processed %d files in %.1f seconds\n",
		total, time.Since(start).Seconds())

	return w.writeSummary()
}

// processFile dispatches one file to its transformer. Unhandled types and
// assets are copied byte for byte.
func (w *Walker) processFile(ctx context.Context, src, dst string) error {
	ext := strings.ToLower(filepath.Ext(src))

	if copyAlways[ext] {
		return copyFile(src, dst)
	}

	switch {
	case htmlExts[ext]:
		text, err := readText(src)
		if err != nil {
			return err
		}
		out, err := htmldoc.Translate(ctx, w.fn, text)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, []byte(out), 0o644)

	case w.cfg.IncludeMarkdown && mdExts[ext]:
		text, err := readText(src)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, []byte(mddoc.Translate(ctx, w.fn, text)), 0o644)

	case w.cfg.TranslateJS && jsExts[ext]:
		text, err := readText(src)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, []byte(jsdoc.Translate(ctx, w.fn, text)), 0o644)

	default:
		return copyFile(src, dst)
	}
}

func (w *Walker) writeSummary() error {
	summary := fmt.Sprintf(`# Translated site
Source: %s
Language: %s → %s

Generated by [Lokyll](https://github.com/dfop02/lokyll). Content files translated; assets copied.
`, w.cfg.SourceLabel, w.cfg.FromLang, w.cfg.ToLang)

	return os.WriteFile(filepath.Join(w.cfg.Dest, "README_TRANSLATED.md"), []byte(summary), 0o644)
}

func countFiles(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		total++
		return nil
	})
	return total, err
}

// readText reads a file as best-effort UTF-8, dropping invalid bytes the
// way a lossy decode would.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func truncateName(name string) string {
	if len(name) > 20 {
		return name[:20] + "..."
	}
	return name
}

// CloneRepo shallow-clones url into dir. The caller is responsible for
// removing dir when the run finishes, including on interruption.
func CloneRepo(ctx context.Context, url, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dir)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// SampleText gathers up to maxRunes of prose from the first few Markdown
// and HTML files under root, for language auto-detection.
func SampleText(root string, maxRunes int) string {
	var b strings.Builder
	filesSeen := 0

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if len([]rune(b.String())) >= maxRunes || filesSeen >= 5 {
			return filepath.SkipAll
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !mdExts[ext] && !htmlExts[ext] {
			return nil
		}

		text, err := readText(path)
		if err != nil {
			return nil
		}
		filesSeen++
		b.WriteString(stripMarkup(text))
		b.WriteString(" ")
		return nil
	})

	runes := []rune(b.String())
	if len(runes) > maxRunes {
		runes = runes[:maxRunes]
	}
	return string(runes)
}

// stripMarkup crudely removes tags, template markers and metadata so the
// detector sees mostly prose. Rough edges are fine; detection only needs
// a representative sample.
func stripMarkup(text string) string {
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch r {
		case '<', '{':
			depth++
		case '>', '}':
			if depth > 0 {
				depth--
			}
			b.WriteRune(' ')
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

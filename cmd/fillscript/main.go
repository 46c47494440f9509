package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill"
	"github.com/cozy/keys-autofill/internal/autofill/generate"
	"github.com/cozy/keys-autofill/internal/infrastructure/logging"
	"github.com/cozy/keys-autofill/internal/providers/scraper"
	"github.com/cozy/keys-autofill/internal/providers/totp"
	"github.com/cozy/keys-autofill/internal/types"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "fillscript:", err)
		os.Exit(1)
	}
}

type options struct {
	html     string
	cipher   string
	url      string
	tabURL   string
	strategy string
	fill     types.FillOptions
	details  bool
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("fillscript", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.html, "html", "", "HTML page to fill (required)")
	fs.StringVar(&o.cipher, "cipher", "", "Cipher file, .yaml, .toml or .json (required)")
	fs.StringVar(&o.url, "url", "", "URL the page was loaded from")
	fs.StringVar(&o.tabURL, "tab-url", "", "Top-level URL when the page is an iframe")
	fs.StringVar(&o.strategy, "identity-strategy", string(generate.IdentityByAttribute), "Identity fill strategy (attributes, slots)")
	fs.BoolVar(&o.fill.OnlyVisibleFields, "only-visible", false, "Ignore hidden and readonly fields")
	fs.BoolVar(&o.fill.OnlyEmptyFields, "only-empty", false, "Ignore fields that already have a value")
	fs.BoolVar(&o.fill.FillNewPassword, "new-password", false, "Fill new-password fields")
	fs.BoolVar(&o.fill.AllowTotpAutofill, "totp", true, "Fill one-time code fields")
	fs.BoolVar(&o.details, "details", false, "Print the collected page details instead of the script")
	fs.BoolVar(&o.verbose, "v", false, "Debug logging on stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.html == "" || (o.cipher == "" && !o.details) {
		return nil, errors.New("-html and -cipher are required")
	}
	return &o, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if o.verbose {
		l, err := logging.New(logging.Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}})
		if err != nil {
			return err
		}
		log = l.Logger
	}

	html, err := os.ReadFile(o.html)
	if err != nil {
		return err
	}
	page, err := scraper.NewCollector().WithLogger(log).Collect(html, o.url)
	if err != nil {
		return err
	}
	if o.details {
		return write(out, page)
	}

	cipher, err := loadCipher(o.cipher)
	if err != nil {
		return err
	}
	strategy, err := generate.ParseIdentityStrategy(o.strategy)
	if err != nil {
		return err
	}

	service := autofill.NewService(autofill.Config{IdentityStrategy: strategy},
		generate.Deps{Log: log, Totp: totp.NewProvider()})
	o.fill.TabURL = o.tabURL
	script := service.GenerateFillScript(ctx, page, cipher, o.fill)
	if script.Empty() {
		return errors.New("nothing to fill")
	}
	return write(out, script)
}

func write(out io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

// loadCipher reads a cipher file. YAML and TOML documents are converted to
// the JSON form of types.Cipher; the type may be given by name.
func loadCipher(path string) (*types.Cipher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".json":
		err = sonic.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported cipher file %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if name, ok := doc["type"].(string); ok {
		t, err := types.ParseCipherType(name)
		if err != nil {
			return nil, err
		}
		doc["type"] = int(t)
	}

	normalized, err := sonic.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var cipher types.Cipher
	if err := sonic.ConfigStd.Unmarshal(normalized, &cipher); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cipher, nil
}

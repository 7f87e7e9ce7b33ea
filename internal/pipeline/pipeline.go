package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/truefrontier/openrouter-launch/internal/cache"
	"github.com/truefrontier/openrouter-launch/internal/catalog"
	"github.com/truefrontier/openrouter-launch/internal/config"
	"github.com/truefrontier/openrouter-launch/internal/credential"
	"github.com/truefrontier/openrouter-launch/internal/diff"
	"github.com/truefrontier/openrouter-launch/internal/httpclient"
	"github.com/truefrontier/openrouter-launch/internal/launcher"
	"github.com/truefrontier/openrouter-launch/internal/loader"
	"github.com/truefrontier/openrouter-launch/internal/openrouter"
	"github.com/truefrontier/openrouter-launch/internal/picker"
	"github.com/truefrontier/openrouter-launch/internal/ui"
)

// ExitFailure is the CLI exit code for errors that are not a tool's own exit.
const ExitFailure = 1

// KeysURL is where users create OpenRouter API keys.
const KeysURL = "https://openrouter.ai/keys"

// ErrBadKeyFormat is returned for keys without the sk-or- prefix.
var ErrBadKeyFormat = errors.New("invalid API key format (should start with 'sk-or-')")

// Options are the per-invocation choices from the command line.
type Options struct {
	Integration         string
	Model               string
	Key                 string
	SaveDefault         bool
	RefreshModels       bool
	AllowDataCollection bool
	Sort                string
	Args                []string
}

// Prompter asks the user for input.
type Prompter interface {
	Password(label string) (string, error)
	Confirm(label string, def bool) (bool, error)
	PickModel(cat catalog.Catalog, aliases picker.AliasLookup) (string, error)
}

// KeyValidator checks an API key with OpenRouter.
type KeyValidator interface {
	ValidateKey(ctx context.Context, key string) error
}

// KeyStore persists the API key.
type KeyStore interface {
	Get() (string, error)
	Save(key string) (string, error)
}

// Runner starts a launcher's tool.
type Runner interface {
	Run(ctx context.Context, l launcher.Launcher, req launcher.Request) error
}

// Pipeline resolves the key and model, then launches the tool.
type Pipeline struct {
	cfg       *config.Config
	store     loader.Store
	fetcher   loader.Fetcher
	loader    *loader.Loader
	resolver  *catalog.Resolver
	validator KeyValidator
	keys      KeyStore
	prompter  Prompter
	runner    Runner

	catalog catalog.Catalog // Last catalog loaded by Models, nil until then
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore overrides the on-disk model cache.
func WithStore(s loader.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithFetcher overrides the remote model source. A nil fetcher disables
// fetching.
func WithFetcher(f loader.Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithValidator overrides the OpenRouter key check.
func WithValidator(v KeyValidator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// WithKeyStore overrides the credential store.
func WithKeyStore(k KeyStore) Option {
	return func(p *Pipeline) { p.keys = k }
}

// WithPrompter overrides the terminal prompts.
func WithPrompter(pr Prompter) Option {
	return func(p *Pipeline) { p.prompter = pr }
}

// WithRunner overrides the process runner.
func WithRunner(r Runner) Option {
	return func(p *Pipeline) { p.runner = r }
}

// New creates a Pipeline wired to OpenRouter, the on-disk cache, the
// keychain, and the terminal.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	ttl, err := cfg.TTL()
	if err != nil {
		return nil, err
	}

	api := openrouter.New(cfg.APIBaseURL, cfg.ModelsURL, httpclient.New(
		httpclient.WithRateLimit(2),
		httpclient.WithUserAgent("openrouter-launch"),
	))

	p := &Pipeline{
		cfg:       cfg,
		store:     cache.New(cfg.CacheDir, cacheOptions(cfg, ttl)...),
		fetcher:   api,
		resolver:  catalog.DefaultResolver(),
		validator: api,
		keys:      credential.New(cfg),
		prompter:  terminal{},
		runner:    launcher.NewRunner(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.loader = loader.New(p.store, p.fetcher, loader.WithStatus(func(msg string) {
		ui.Infof("%s", msg)
	}))
	return p, nil
}

func cacheOptions(cfg *config.Config, ttl time.Duration) []cache.Option {
	opts := []cache.Option{cache.WithTTL(ttl)}
	if len(cfg.CodingPrefixes) > 0 {
		opts = append(opts, cache.WithCodingPrefixes(cfg.CodingPrefixes))
	}
	return opts
}

// Resolver returns the alias resolver in use.
func (p *Pipeline) Resolver() *catalog.Resolver { return p.resolver }

// Models loads the catalog and reports degraded sources to the user.
func (p *Pipeline) Models(ctx context.Context, refresh bool) (catalog.Catalog, loader.Source) {
	cat, src := p.loader.Load(ctx, refresh)
	p.catalog = cat
	if n := src.Notice(); n != "" {
		ui.Warnf("%s", n)
	}
	return cat, src
}

// Refresh fetches the model list and reports how it differs from the
// previous cache. The change set is nil unless the fetch succeeded.
func (p *Pipeline) Refresh(ctx context.Context) (catalog.Catalog, loader.Source, *diff.ChangeSet) {
	previous, _ := p.store.Read()
	cat, src := p.Models(ctx, true)
	if src != loader.SourceRemote {
		return cat, src, nil
	}
	return cat, src, diff.Compute(previous, cat)
}

// Launch runs the whole flow for opts.
func (p *Pipeline) Launch(ctx context.Context, opts Options) error {
	l, err := launcher.Get(opts.Integration)
	if err != nil {
		return fmt.Errorf("%w (supported: %v)", err, launcher.List())
	}

	// 1. Preferences
	prefs := launcher.Prefs{
		DataCollection: p.cfg.DataCollection,
		ProviderSort:   p.cfg.ProviderSort,
	}
	if opts.AllowDataCollection {
		prefs.DataCollection = config.DataCollectionAllow
	}
	if opts.Sort != "" {
		if err := config.ValidateSort(opts.Sort); err != nil {
			return err
		}
		prefs.ProviderSort = opts.Sort
	}

	// 2. API key
	key, err := p.ResolveKey(ctx, opts.Key)
	if err != nil {
		return err
	}

	// 3. Model
	model, interactive, err := p.SelectModel(ctx, opts.Model, opts.RefreshModels)
	if err != nil {
		return err
	}

	// 4. Saved defaults
	if opts.SaveDefault {
		if err := p.saveDefaults(key, model); err != nil {
			return err
		}
	} else if interactive && model != p.cfg.DefaultModel {
		if err := p.maybeSaveDefaultModel(model); err != nil {
			return err
		}
	}

	// 5. Launch
	req := launcher.Request{
		Model:  model,
		APIKey: key,
		Prefs:  prefs,
		Args:   opts.Args,
	}
	if p.catalog != nil {
		req.Pricing = p.catalog.PricingFor(model)
	}
	slog.Debug("launching", "integration", l.Name(), "model", model, "pricing", req.Pricing)
	return p.runner.Run(ctx, l, req)
}

// ResolveKey returns the API key from the flag, the config or environment,
// the keychain, or an interactive prompt, in that order. A flag value is
// validated against OpenRouter before use.
func (p *Pipeline) ResolveKey(ctx context.Context, flagKey string) (string, error) {
	if flagKey != "" {
		if !openrouter.ValidKeyFormat(flagKey) {
			return "", ErrBadKeyFormat
		}
		if err := p.validateKey(ctx, flagKey); err != nil {
			return "", err
		}
		return flagKey, nil
	}

	if p.cfg.APIKey != "" {
		ui.Infof("Using API key from config")
		return p.cfg.APIKey, nil
	}

	key, err := p.keys.Get()
	if err == nil {
		ui.Infof("Using API key from system keychain")
		return key, nil
	}
	if !errors.Is(err, credential.ErrNotFound) {
		slog.Warn("reading stored key failed", "error", err)
	}

	return p.promptKey(ctx)
}

func (p *Pipeline) promptKey(ctx context.Context) (string, error) {
	ui.Println()
	ui.Println("OpenRouter API key not found.")
	ui.Println("Get your key at: " + KeysURL)
	ui.Println()

	for {
		key, err := p.prompter.Password("Enter your OpenRouter API key:")
		if err != nil {
			return "", err
		}
		if key == "" {
			ui.Errorf("API key is required")
			continue
		}
		if !openrouter.ValidKeyFormat(key) {
			ui.Errorf("%v", ErrBadKeyFormat)
			continue
		}
		if err := p.validateKey(ctx, key); err != nil {
			ui.Errorf("%v", err)
			continue
		}

		save, err := p.prompter.Confirm("Save API key to config?", true)
		if err != nil {
			return "", err
		}
		if save {
			where, err := p.keys.Save(key)
			if err != nil {
				return "", err
			}
			ui.Successf("API key saved to %s", where)
		}
		return key, nil
	}
}

func (p *Pipeline) validateKey(ctx context.Context, key string) error {
	ui.Infof("Validating API key...")
	if err := p.validator.ValidateKey(ctx, key); err != nil {
		if errors.Is(err, openrouter.ErrInvalidKey) {
			return fmt.Errorf("%w (authentication failed)", err)
		}
		return err
	}
	ui.Successf("API key validated successfully")
	return nil
}

// SelectModel picks the model from the flag, the saved default, or the
// interactive picker. interactive is true only for a picker choice.
func (p *Pipeline) SelectModel(ctx context.Context, flagModel string, refresh bool) (model string, interactive bool, err error) {
	if flagModel != "" {
		cat, _ := p.Models(ctx, refresh)
		id, err := p.resolver.Resolve(flagModel, cat)
		if err != nil {
			return "", false, fmt.Errorf("%w (use --help to see available models and aliases)", err)
		}
		return id, false, nil
	}

	if p.cfg.DefaultModel != "" {
		ui.Infof("Using default model: %s", p.cfg.DefaultModel)
		return p.cfg.DefaultModel, false, nil
	}

	cat, _ := p.Models(ctx, refresh)
	id, err := p.prompter.PickModel(cat, p.resolver.AliasFor)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (p *Pipeline) saveDefaults(key, model string) error {
	if err := config.Save(p.cfg.File, map[string]string{"default_model": model}); err != nil {
		return fmt.Errorf("saving default model: %w", err)
	}
	ui.Successf("Default model saved: %s", model)

	if key == p.cfg.APIKey {
		return nil
	}
	where, err := p.keys.Save(key)
	if err != nil {
		return err
	}
	ui.Successf("API key saved to %s", where)
	return nil
}

func (p *Pipeline) maybeSaveDefaultModel(model string) error {
	save, err := p.prompter.Confirm(fmt.Sprintf("Save '%s' as default model?", model), false)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := config.Save(p.cfg.File, map[string]string{"default_model": model}); err != nil {
		return fmt.Errorf("saving default model: %w", err)
	}
	ui.Successf("Default model saved: %s", model)
	return nil
}

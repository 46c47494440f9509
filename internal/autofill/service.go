package autofill

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill/generate"
	"github.com/cozy/keys-autofill/internal/infrastructure/monitoring"
	"github.com/cozy/keys-autofill/internal/shared/id"
	"github.com/cozy/keys-autofill/internal/types"
)

var (
	// ErrNothingToAutofill is returned when the tab, the cipher or the page
	// details are missing.
	ErrNothingToAutofill = errors.New("nothing to autofill")
	// ErrDidNotAutofill is returned when no frame produced a script.
	ErrDidNotAutofill = errors.New("did not autofill")
)

// DefaultDelay is the pause, in milliseconds, between two operations of a
// dispatched script.
const DefaultDelay = 20

// Tab is the browser tab being filled.
type Tab struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Frame is the page details collected in one frame of a tab.
type Frame struct {
	FrameID int                `json:"frameId"`
	Tab     Tab                `json:"tab"`
	Details *types.PageDetails `json:"details"`
}

// Sender delivers a fill script to the frame that must run it.
type Sender interface {
	SendFillScript(ctx context.Context, tab Tab, frameID int, script *types.FillScript) error
}

// Events records cipher usage.
type Events interface {
	UpdateLastUsed(ctx context.Context, cipherID string) error
	Autofilled(ctx context.Context, cipherID string) error
}

// Options is one autofill request.
type Options struct {
	Tab         *Tab
	Cipher      *types.Cipher
	PageDetails []Frame
	Fill        types.FillOptions

	AllowUntrustedIframe bool
	SkipLastUsed         bool
	// AutoCopyTotp asks for the current TOTP code of the login, returned
	// for the clipboard. It needs premium access or an organization that
	// uses TOTP.
	AutoCopyTotp     bool
	CanAccessPremium bool
}

// FrameScript is a script dispatched to a frame.
type FrameScript struct {
	FrameID int               `json:"frameId"`
	Script  *types.FillScript `json:"script"`
}

// Result is the outcome of DoAutoFill.
type Result struct {
	Scripts []FrameScript `json:"scripts"`
	Totp    string        `json:"totp,omitempty"`
}

// Config configures the service.
type Config struct {
	IdentityStrategy generate.IdentityStrategy
	// Delay is set as delay_between_operations on dispatched scripts.
	Delay int
}

// Service selects the generator of a cipher and runs autofill requests. It
// holds no per-request state and is safe for concurrent use.
type Service struct {
	log        *zap.Logger
	cfg        Config
	deps       generate.Deps
	generators map[types.CipherType]generate.Generator
	sender     Sender
	events     Events
	metrics    *monitoring.Metrics
}

// NewService creates the service.
func NewService(cfg Config, deps generate.Deps) *Service {
	deps = deps.WithDefaults()
	if cfg.Delay == 0 {
		cfg.Delay = DefaultDelay
	}
	return &Service{
		log:  deps.Log,
		cfg:  cfg,
		deps: deps,
		generators: map[types.CipherType]generate.Generator{
			types.CipherTypeLogin:    generate.NewLogin(deps),
			types.CipherTypeCard:     generate.NewCard(),
			types.CipherTypeIdentity: generate.NewIdentityGenerator(cfg.IdentityStrategy),
			types.CipherTypeContact:  generate.NewContact(deps, cfg.IdentityStrategy),
			types.CipherTypePaper:    generate.NewPaper(deps),
		},
	}
}

// WithSender sets the script dispatcher.
func (s *Service) WithSender(sender Sender) *Service {
	s.sender = sender
	return s
}

// WithEvents sets the usage recorder.
func (s *Service) WithEvents(events Events) *Service {
	s.events = events
	return s
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// GenerateFillScript builds the fill script of cipher for page. Custom
// fields are filled first, then the generator of the cipher's type runs.
// It returns nil when the cipher type has no generator or nothing was
// filled.
func (s *Service) GenerateFillScript(ctx context.Context, page *types.PageDetails, cipher *types.Cipher, opts types.FillOptions) *types.FillScript {
	if page == nil || cipher == nil {
		return nil
	}
	page = page.Compacted()
	gen, ok := s.generators[cipher.Type()]
	if !ok {
		return nil
	}

	req := generate.NewRequest(page, cipher, opts)
	generate.CustomFields(req, s.deps.Matcher)
	script := gen.Generate(ctx, req)
	if script.Empty() {
		return nil
	}
	script.ItemType = cipher.Type().String()
	return script
}

// DoAutoFill generates a script for every frame of the tab and dispatches
// the non-empty ones. Frames whose tab differs from opts.Tab are skipped,
// so are untrusted iframes unless opts.AllowUntrustedIframe is set.
func (s *Service) DoAutoFill(ctx context.Context, opts Options) (*Result, error) {
	if opts.Tab == nil || opts.Cipher == nil || len(opts.PageDetails) == 0 {
		return nil, ErrNothingToAutofill
	}
	tab := *opts.Tab
	cipherType := opts.Cipher.Type().String()

	fill := opts.Fill
	fill.TabURL = tab.URL

	result := &Result{}
	for _, frame := range opts.PageDetails {
		if frame.Tab.ID != tab.ID || frame.Tab.URL != tab.URL {
			continue
		}

		script := s.GenerateFillScript(ctx, frame.Details, opts.Cipher, fill)
		if script.Empty() {
			s.record(cipherType, monitoring.OutcomeEmpty, 0)
			continue
		}
		if script.UntrustedIframe && !opts.AllowUntrustedIframe {
			s.log.Info("Autofill blocked on untrusted iframe",
				zap.String("cipher", opts.Cipher.ID),
				zap.String("url", frame.Details.URL))
			s.record(cipherType, monitoring.OutcomeUntrusted, 0)
			continue
		}

		script.Properties.DelayBetweenOperations = s.cfg.Delay
		script.ID = id.NewScriptID().String()

		if s.sender != nil {
			if err := s.sender.SendFillScript(ctx, tab, frame.FrameID, script); err != nil {
				s.log.Warn("Failed to send fill script",
					zap.String("script", script.ID),
					zap.Int("frame", frame.FrameID),
					zap.Error(err))
				s.record(cipherType, monitoring.OutcomeSendFailed, 0)
				continue
			}
		}
		s.record(cipherType, monitoring.OutcomeGenerated, len(script.Script))
		result.Scripts = append(result.Scripts, FrameScript{FrameID: frame.FrameID, Script: script})
	}

	if len(result.Scripts) == 0 {
		return nil, ErrDidNotAutofill
	}

	s.recordUsage(ctx, opts)
	result.Totp = s.totpToCopy(ctx, opts)
	return result, nil
}

func (s *Service) record(cipherType, outcome string, actions int) {
	if s.metrics != nil {
		s.metrics.RecordFillScript(cipherType, outcome, actions)
	}
}

func (s *Service) recordUsage(ctx context.Context, opts Options) {
	if s.events == nil {
		return
	}
	if !opts.SkipLastUsed {
		if err := s.events.UpdateLastUsed(ctx, opts.Cipher.ID); err != nil {
			s.log.Warn("Failed to update last used date", zap.String("cipher", opts.Cipher.ID), zap.Error(err))
		}
	}
	if err := s.events.Autofilled(ctx, opts.Cipher.ID); err != nil {
		s.log.Warn("Failed to collect autofill event", zap.String("cipher", opts.Cipher.ID), zap.Error(err))
	}
}

// totpToCopy returns the current code of the login's TOTP secret, or ""
// when the caller did not ask for it or may not use it. A code that cannot
// be computed is logged; the fill itself already happened.
func (s *Service) totpToCopy(ctx context.Context, opts Options) string {
	login := opts.Cipher.Login()
	if login == nil || login.Totp == "" || !opts.AutoCopyTotp || s.deps.Totp == nil {
		return ""
	}
	if !opts.CanAccessPremium && !opts.Cipher.OrganizationUseTotp {
		return ""
	}
	code, err := s.deps.Totp.GetCode(ctx, login.Totp)
	if err != nil {
		s.log.Warn("Failed to compute TOTP code", zap.String("cipher", opts.Cipher.ID), zap.Error(err))
		return ""
	}
	return code
}

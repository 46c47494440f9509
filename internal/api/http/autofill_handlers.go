package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill"
	"github.com/cozy/keys-autofill/internal/infrastructure/tracing"
	"github.com/cozy/keys-autofill/internal/types"
)

// PageDetailsRequest carries a page to collect.
type PageDetailsRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
}

// FillScriptRequest asks for the fill script of one cipher on one page.
// The page is given either collected, as PageDetails, or as raw HTML.
type FillScriptRequest struct {
	PageDetails *types.PageDetails  `json:"pageDetails"`
	HTML        string              `json:"html"`
	URL         string              `json:"url"`
	Cipher      *types.Cipher       `json:"cipher" binding:"required"`
	Options     *FillOptionsRequest `json:"options"`
}

// FillOptionsRequest overrides the server's fill defaults. Unset fields
// keep the default.
type FillOptionsRequest struct {
	SkipUsernameOnlyFill *bool                   `json:"skipUsernameOnlyFill"`
	OnlyEmptyFields      *bool                   `json:"onlyEmptyFields"`
	OnlyVisibleFields    *bool                   `json:"onlyVisibleFields"`
	FillNewPassword      *bool                   `json:"fillNewPassword"`
	AllowTotpAutofill    *bool                   `json:"allowTotpAutofill"`
	DefaultUriMatch      *types.UriMatchStrategy `json:"defaultUriMatch"`
	TabURL               *string                 `json:"tabUrl"`
	EquivalentDomains    [][]string              `json:"equivalentDomains"`
}

// apply returns defaults with the set fields of o laid over them.
func (o *FillOptionsRequest) apply(defaults types.FillOptions) types.FillOptions {
	if o == nil {
		return defaults
	}
	opts := defaults
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.SkipUsernameOnlyFill, o.SkipUsernameOnlyFill)
	setBool(&opts.OnlyEmptyFields, o.OnlyEmptyFields)
	setBool(&opts.OnlyVisibleFields, o.OnlyVisibleFields)
	setBool(&opts.FillNewPassword, o.FillNewPassword)
	setBool(&opts.AllowTotpAutofill, o.AllowTotpAutofill)
	if o.DefaultUriMatch != nil {
		opts.DefaultUriMatch = *o.DefaultUriMatch
	}
	if o.TabURL != nil {
		opts.TabURL = *o.TabURL
	}
	if o.EquivalentDomains != nil {
		opts.EquivalentDomains = o.EquivalentDomains
	}
	return opts
}

// AutoFillRequest is one autofill run over the frames of a tab.
type AutoFillRequest struct {
	Tab                  *autofill.Tab       `json:"tab"`
	Cipher               *types.Cipher       `json:"cipher"`
	PageDetails          []autofill.Frame    `json:"pageDetails"`
	Options              *FillOptionsRequest `json:"options"`
	AllowUntrustedIframe *bool               `json:"allowUntrustedIframe"`
	SkipLastUsed         bool                `json:"skipLastUsed"`
	AutoCopyTotp         bool                `json:"autoCopyTotp"`
	CanAccessPremium     bool                `json:"canAccessPremium"`
}

// QualifyRequest asks for the qualification of a page's fields. Updates
// report fields that became visible since the page was collected; Typed
// lists the opids the user typed into, the only fields given a
// FieldQualifier.
type QualifyRequest struct {
	PageDetails *types.PageDetails `json:"pageDetails" binding:"required"`
	Updates     []types.Field      `json:"updates"`
	Typed       []string           `json:"typed"`
}

// QualifiedField is the qualification of one field.
type QualifiedField struct {
	OpID               string               `json:"opid"`
	FilledByCipherType types.CipherType     `json:"filledByCipherType"`
	CipherType         string               `json:"cipherType"`
	FieldQualifier     types.FieldQualifier `json:"fieldQualifier,omitempty"`
}

// PageDetails collects the field inventory of an HTML page
func (h *Handlers) PageDetails(c *gin.Context) {
	var req PageDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	details, err := h.collect(c.Request.Context(), req.HTML, req.URL)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handlers) collect(ctx context.Context, html, url string) (*types.PageDetails, error) {
	if err := validatePageURL(url); err != nil {
		return nil, err
	}
	var details *types.PageDetails
	err := h.trace(ctx, "collect", func(context.Context) error {
		var err error
		details, err = h.collector.Collect([]byte(html), url)
		return err
	})
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordPageFields(len(details.Fields))
	}
	return details, nil
}

// FillScript generates the fill script of a cipher for a page
func (h *Handlers) FillScript(c *gin.Context) {
	var req FillScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	page := req.PageDetails
	if page == nil {
		if req.HTML == "" {
			badRequest(c, errors.New("pageDetails or html required"))
			return
		}
		var err error
		if page, err = h.collect(ctx, req.HTML, req.URL); err != nil {
			badRequest(c, err)
			return
		}
	}

	opts := req.Options.apply(h.defaults.Fill)

	var script *types.FillScript
	_ = h.trace(ctx, "generate", func(ctx context.Context) error {
		script = h.service.GenerateFillScript(ctx, page, req.Cipher, opts)
		return nil
	})

	h.log.Debug("Fill script generated", append(tracing.Fields(ctx),
		zap.String("cipher", req.Cipher.ID),
		zap.Stringer("type", req.Cipher.Type()),
		zap.Int("actions", len(scriptActions(script))))...)

	c.JSON(http.StatusOK, gin.H{
		"script": script,
		"filled": !script.Empty(),
	})
}

func scriptActions(script *types.FillScript) []types.Action {
	if script == nil {
		return nil
	}
	return script.Script
}

// AutoFill runs a full autofill over the frames of a tab
func (h *Handlers) AutoFill(c *gin.Context) {
	var req AutoFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	opts := autofill.Options{
		Tab:                  req.Tab,
		Cipher:               req.Cipher,
		PageDetails:          req.PageDetails,
		Fill:                 req.Options.apply(h.defaults.Fill),
		AllowUntrustedIframe: h.defaults.AllowUntrustedIframe,
		SkipLastUsed:         req.SkipLastUsed,
		AutoCopyTotp:         req.AutoCopyTotp,
		CanAccessPremium:     req.CanAccessPremium,
	}
	if req.AllowUntrustedIframe != nil {
		opts.AllowUntrustedIframe = *req.AllowUntrustedIframe
	}

	var result *autofill.Result
	err := h.trace(c.Request.Context(), "autofill", func(ctx context.Context) error {
		var err error
		result, err = h.service.DoAutoFill(ctx, opts)
		return err
	})
	switch {
	case errors.Is(err, autofill.ErrNothingToAutofill):
		badRequest(c, err)
	case errors.Is(err, autofill.ErrDidNotAutofill):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case err != nil:
		h.log.Error("Autofill failed", append(tracing.Fields(c.Request.Context()), zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Qualify tags the fields of a page with the cipher type that fills them
func (h *Handlers) Qualify(c *gin.Context) {
	var req QualifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session := h.qualifier.NewSession(req.PageDetails)
	_ = h.trace(c.Request.Context(), "qualify", func(context.Context) error {
		session.Scan()
		for i := range req.Updates {
			session.Reevaluate(&req.Updates[i])
		}
		return nil
	})

	typed := make(map[string]bool, len(req.Typed))
	for _, opid := range req.Typed {
		typed[opid] = true
	}

	fields := []QualifiedField{}
	for _, f := range req.PageDetails.Fields {
		if f.FilledByCipherType == 0 {
			continue
		}
		qf := QualifiedField{
			OpID:               f.OpID,
			FilledByCipherType: f.FilledByCipherType,
			CipherType:         f.FilledByCipherType.String(),
		}
		if typed[f.OpID] {
			qf.FieldQualifier = session.Input(f.OpID)
		}
		fields = append(fields, qf)
		if h.metrics != nil {
			h.metrics.RecordQualifiedField(f.FilledByCipherType.String())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"fields":  fields,
		"pending": session.Pending(),
	})
}

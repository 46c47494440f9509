package generate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill/locate"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// Request is one fill-script generation: the page, the cipher, the options
// bag, and the script and claimed-field set being built.
type Request struct {
	Page    *types.PageDetails
	Cipher  *types.Cipher
	Options types.FillOptions

	Script *types.FillScript
	Filled *types.FilledFields
}

// NewRequest creates a request with an empty script and claimed-field set.
func NewRequest(page *types.PageDetails, cipher *types.Cipher, opts types.FillOptions) *Request {
	return &Request{
		Page:    page,
		Cipher:  cipher,
		Options: opts,
		Script:  types.NewFillScript(),
		Filled:  types.NewFilledFields(),
	}
}

// Generator appends the fill operations of one cipher type to the request's
// script and returns it, possibly without actions. It returns nil when the
// cipher does not carry the generator's record type.
type Generator interface {
	Generate(ctx context.Context, req *Request) *types.FillScript
}

// TotpProvider computes the current one-time code of a login secret.
type TotpProvider interface {
	GetCode(ctx context.Context, secret string) (string, error)
}

// AttributeSource fetches a record attribute that is not held locally.
type AttributeSource interface {
	Attribute(ctx context.Context, cipher *types.Cipher, name string) (string, error)
}

// Deps are the collaborators shared by the generators.
type Deps struct {
	Log     *zap.Logger
	Matcher *match.Matcher
	Locator *locate.Locator
	Totp    TotpProvider
	Source  AttributeSource
}

// WithDefaults fills the unset logger, matcher and locator.
func (d Deps) WithDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Matcher == nil {
		d.Matcher = match.NewMatcher(d.Log)
	}
	if d.Locator == nil {
		d.Locator = locate.NewLocator(d.Matcher)
	}
	return d
}

// FillField writes value into field unless the value is empty, the field
// is disabled or already claimed, or the field is a select without a
// matching option.
// A select is filled with the text of the option whose value or text
// equals value, ignoring case. It reports whether the field was filled.
func FillField(req *Request, field *types.Field, value string) bool {
	if value == "" || field == nil || field.Disabled || req.Filled.Has(field.OpID) {
		return false
	}
	if field.Type == "select-one" && field.HasOptions() {
		selected, ok := selectOption(field.SelectInfo, value)
		if !ok {
			return false
		}
		value = selected
	}
	req.Filled.Claim(field)
	req.Script.FillByOpID(field, value)
	return true
}

func selectOption(info *types.SelectInfo, value string) (string, bool) {
	for _, option := range info.Options {
		for _, part := range option {
			if part != "" && strings.EqualFold(part, value) {
				if len(option) > 1 {
					return option[1], true
				}
				return value, true
			}
		}
	}
	return "", false
}

// isFillableByAttributes reports whether the card and identity attribute
// loops may consider the field.
func isFillableByAttributes(f *types.Field, excludedTypes []string) bool {
	return f.Viewable &&
		!f.Disabled &&
		!match.IsExcludedFieldType(f, excludedTypes) &&
		!match.FieldHasDisqualifyingAttributeValue(f)
}

// SetFillScriptForFocus appends a focus operation on the last visible
// password field filled, else on the last visible field filled.
func SetFillScriptForFocus(req *Request) {
	var last, lastPassword *types.Field
	for _, f := range req.Filled.Fields() {
		if !f.Viewable {
			continue
		}
		last = f
		if f.Type == "password" {
			lastPassword = f
		}
	}
	switch {
	case lastPassword != nil:
		req.Script.FocusByOpID(lastPassword.OpID)
	case last != nil:
		req.Script.FocusByOpID(last.OpID)
	}
}

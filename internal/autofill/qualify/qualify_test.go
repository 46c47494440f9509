package qualify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cozy/keys-autofill/internal/types"
)

func page(forms []types.Form, fields ...*types.Field) *types.PageDetails {
	p := &types.PageDetails{URL: "https://example.com", Forms: make(map[string]types.Form)}
	for _, form := range forms {
		p.Forms[form.OpID] = form
	}
	for i, f := range fields {
		f.ElementNumber = i
		if f.OpID == "" {
			f.OpID = fmt.Sprintf("__%d", i)
		}
		if f.TagName == "" {
			f.TagName = "input"
		}
		if f.Type == "" {
			f.Type = "text"
		}
	}
	p.Fields = fields
	return p
}

func form(opid string) types.Form {
	return types.Form{OpID: opid}
}

func field(form string, f types.Field) *types.Field {
	f.Form = form
	f.Viewable = true
	return &f
}

func cipherTypes(q *Qualifier, p *types.PageDetails) []types.CipherType {
	out := make([]types.CipherType, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = q.FilledByCipherType(f, p)
	}
	return out
}

func TestFilledByCipherType(t *testing.T) {
	q := New()

	tests := []struct {
		name  string
		forms []types.Form
		items []*types.Field
		want  []types.CipherType
	}{
		{
			name:  "login form",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "email"}),
				field("f1", types.Field{Type: "password", HTMLName: "password"}),
			},
			want: []types.CipherType{types.CipherTypeLogin, types.CipherTypeLogin},
		},
		{
			name:  "lone username step",
			forms: []types.Form{form("f1")},
			items: []*types.Field{field("f1", types.Field{HTMLName: "username"})},
			want:  []types.CipherType{types.CipherTypeLogin},
		},
		{
			name:  "username outside forms",
			items: []*types.Field{field("", types.Field{AutoCompleteType: "username"})},
			want:  []types.CipherType{types.CipherTypeLogin},
		},
		{
			name:  "totp",
			forms: []types.Form{form("f1")},
			items: []*types.Field{field("f1", types.Field{AutoCompleteType: "one-time-code"})},
			want:  []types.CipherType{types.CipherTypeLogin},
		},
		{
			name:  "account creation",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "email"}),
				field("f1", types.Field{Type: "password", AutoCompleteType: "new-password"}),
				field("f1", types.Field{Type: "password", HTMLName: "confirm-password"}),
			},
			want: []types.CipherType{types.CipherTypeLogin, types.CipherTypeLogin, types.CipherTypeLogin},
		},
		{
			name:  "card form",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{AutoCompleteType: "cc-number"}),
				field("f1", types.Field{HTMLName: "cvc"}),
			},
			want: []types.CipherType{types.CipherTypeCard, types.CipherTypeCard},
		},
		{
			name:  "lone card keyword",
			forms: []types.Form{form("f1")},
			items: []*types.Field{field("f1", types.Field{HTMLName: "cvc"})},
			want:  []types.CipherType{0},
		},
		{
			name:  "identity form",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "last_name"}),
				field("f1", types.Field{HTMLName: "city"}),
				field("f1", types.Field{AutoCompleteType: "billing postal-code"}),
			},
			want: []types.CipherType{types.CipherTypeIdentity, types.CipherTypeIdentity, types.CipherTypeIdentity},
		},
		{
			name:  "newsletter e-mail is not a login",
			forms: []types.Form{{OpID: "f1", HTMLID: "newsletter-signup"}},
			items: []*types.Field{field("f1", types.Field{HTMLName: "email"})},
			want:  []types.CipherType{types.CipherTypeIdentity},
		},
		{
			name:  "ignored fields",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{Type: "checkbox", HTMLName: "email"}),
				field("f1", types.Field{TagName: "textarea", Type: "textarea", HTMLName: "city"}),
				field("f1", types.Field{HTMLName: "captcha"}),
			},
			want: []types.CipherType{0, 0, 0},
		},
		{
			name:  "contact keywords need the contact menu",
			forms: []types.Form{form("f1")},
			items: []*types.Field{field("f1", types.Field{HTMLName: "birthday"})},
			want:  []types.CipherType{0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := page(tt.forms, tt.items...)
			assert.Equal(t, tt.want, cipherTypes(q, p))
		})
	}
}

func TestContactsForIdentityForms(t *testing.T) {
	q := New(WithContactsForIdentityForms(true))
	p := page([]types.Form{form("f1")},
		field("f1", types.Field{HTMLName: "birthday"}),
		field("f1", types.Field{HTMLName: "passport-number"}),
		field("f1", types.Field{HTMLName: "city"}),
	)

	assert.Equal(t, []types.CipherType{
		types.CipherTypeContact,
		types.CipherTypeContact,
		types.CipherTypeContact,
	}, cipherTypes(q, p))

	assert.Equal(t, []types.CipherType{0, 0, types.CipherTypeIdentity},
		cipherTypes(New(WithContactsForIdentityForms(false)), p))
}

func TestSessionInput(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		forms    []types.Form
		items    []*types.Field
		expected []types.FieldQualifier
	}{
		{
			name:  "login",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "email"}),
				field("f1", types.Field{Type: "password", HTMLName: "password"}),
			},
			expected: []types.FieldQualifier{types.QualifierUsername, types.QualifierPassword},
		},
		{
			name:  "account creation",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{Type: "password", AutoCompleteType: "new-password"}),
				field("f1", types.Field{Type: "password", HTMLName: "confirm-password"}),
			},
			expected: []types.FieldQualifier{types.QualifierNewPassword, types.QualifierNewPassword},
		},
		{
			name:  "card",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{AutoCompleteType: "cc-number"}),
				field("f1", types.Field{HTMLName: "cvc"}),
				field("f1", types.Field{AutoCompleteType: "cc-exp-month"}),
			},
			expected: []types.FieldQualifier{
				types.QualifierCardNumber,
				types.QualifierCardCvv,
				types.QualifierCardExpirationMonth,
			},
		},
		{
			name:  "identity",
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "last_name"}),
				field("f1", types.Field{HTMLName: "city"}),
				field("f1", types.Field{AutoCompleteType: "billing postal-code"}),
				field("f1", types.Field{HTMLName: "address-line-2"}),
			},
			expected: []types.FieldQualifier{
				types.QualifierIdentityLastName,
				types.QualifierIdentityCity,
				types.QualifierIdentityPostalCode,
				types.QualifierIdentityAddress2,
			},
		},
		{
			name:  "contact",
			opts:  []Option{WithContactsForIdentityForms(true)},
			forms: []types.Form{form("f1")},
			items: []*types.Field{
				field("f1", types.Field{HTMLName: "job-title"}),
				field("f1", types.Field{HTMLName: "birthday"}),
				field("f1", types.Field{HTMLName: "iban"}),
				field("f1", types.Field{HTMLName: "title"}),
			},
			expected: []types.FieldQualifier{
				types.QualifierContactJobTitle,
				types.QualifierContactBirthday,
				types.QualifierPaperIBAN,
				types.QualifierIdentityTitle,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := page(tt.forms, tt.items...)
			s := New(tt.opts...).NewSession(p)
			require.Len(t, s.Scan(), len(tt.items))

			got := make([]types.FieldQualifier, len(p.Fields))
			for i, f := range p.Fields {
				got[i] = s.Input(f.OpID)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSessionInputKeepsQualifier(t *testing.T) {
	p := page([]types.Form{form("f1")},
		field("f1", types.Field{HTMLName: "last_name"}),
		field("f1", types.Field{HTMLName: "city"}),
	)
	s := New().NewSession(p)
	s.Scan()

	require.Equal(t, types.QualifierIdentityLastName, s.Input("__0"))
	p.Fields[0].HTMLName = "city"
	assert.Equal(t, types.QualifierIdentityLastName, s.Input("__0"))

	assert.True(t, p.Fields[1].FieldQualifier.IsZero(), "computed on input only")
	assert.Equal(t, types.FieldQualifier(""), s.Input("missing"))
}

func TestSessionInputUnqualifiedField(t *testing.T) {
	p := page([]types.Form{form("f1")}, field("f1", types.Field{HTMLName: "comment"}))
	s := New().NewSession(p)

	assert.Empty(t, s.Scan())
	assert.Equal(t, types.FieldQualifier(""), s.Input("__0"))
}

func TestSessionReevaluate(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	q := New(WithLogger(zap.New(core)))

	hidden := field("f1", types.Field{HTMLName: "password", Type: "password"})
	hidden.Viewable = false
	p := page([]types.Form{form("f1")},
		field("f1", types.Field{HTMLName: "email"}),
		hidden,
	)
	s := q.NewSession(p)

	qualified := s.Scan()
	require.Len(t, qualified, 1)
	assert.Equal(t, "__0", qualified[0].OpID)
	assert.Equal(t, []string{"__1"}, s.Pending())
	assert.Zero(t, hidden.FilledByCipherType)

	t.Run("still hidden", func(t *testing.T) {
		ct, ok := s.Reevaluate(&types.Field{OpID: "__1", Viewable: true, Readonly: true})
		assert.False(t, ok)
		assert.Zero(t, ct)
		assert.Equal(t, []string{"__1"}, s.Pending())
	})

	t.Run("shown", func(t *testing.T) {
		ct, ok := s.Reevaluate(&types.Field{OpID: "__1", Viewable: true})
		require.True(t, ok)
		assert.Equal(t, types.CipherTypeLogin, ct)
		assert.Equal(t, types.CipherTypeLogin, hidden.FilledByCipherType)
		assert.Empty(t, s.Pending())
		assert.Equal(t, types.QualifierPassword, s.Input("__1"))

		entries := logs.FilterMessage("Hidden field qualified").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "__1", entries[0].ContextMap()["opid"])
		assert.Equal(t, "login", entries[0].ContextMap()["cipherType"])
	})

	t.Run("not pending", func(t *testing.T) {
		_, ok := s.Reevaluate(&types.Field{OpID: "__1", Viewable: true})
		assert.False(t, ok)
		_, ok = s.Reevaluate(&types.Field{OpID: "__0", Viewable: true})
		assert.False(t, ok)
	})
}

func TestNullFields(t *testing.T) {
	q := New()
	p := page([]types.Form{form("f1")},
		field("f1", types.Field{HTMLName: "email"}),
		field("f1", types.Field{Type: "password", HTMLName: "password"}),
	)
	p.Fields = append(p.Fields, nil)

	require.NotPanics(t, func() {
		assert.Zero(t, q.FilledByCipherType(nil, p))
		assert.Equal(t, types.CipherTypeLogin, q.FilledByCipherType(p.Fields[0], p))
	})

	s := q.NewSession(p)
	var qualified []*types.Field
	require.NotPanics(t, func() { qualified = s.Scan() })
	assert.Len(t, qualified, 2)

	ct, ok := s.Reevaluate(nil)
	assert.False(t, ok)
	assert.Zero(t, ct)
}

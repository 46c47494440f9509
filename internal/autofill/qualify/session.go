package qualify

import (
	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/types"
)

// Session qualifies the fields of one page. Hidden fields (readonly,
// disabled or not viewable) are set aside at scan time and qualified when
// they are reported visible again. A Session is not safe for concurrent
// use.
type Session struct {
	q       *Qualifier
	ctx     *pageContext
	pending map[string]*types.Field
}

// NewSession starts qualifying page.
func (q *Qualifier) NewSession(page *types.PageDetails) *Session {
	return &Session{
		q:       q,
		ctx:     newPageContext(page),
		pending: make(map[string]*types.Field),
	}
}

// Scan sets FilledByCipherType on every visible field of the page and
// returns the fields that got one. Hidden fields are left pending.
func (s *Session) Scan() []*types.Field {
	var qualified []*types.Field
	for _, f := range s.ctx.page.Fields {
		if f.IsHidden() {
			s.pending[f.OpID] = f
			continue
		}
		if s.qualify(f) {
			qualified = append(qualified, f)
		}
	}
	return qualified
}

func (s *Session) qualify(f *types.Field) bool {
	f.FilledByCipherType = s.q.filledByCipherType(s.ctx, f)
	return f.FilledByCipherType != 0
}

// Pending returns the opids of the fields waiting to become visible.
func (s *Session) Pending() []string {
	out := make([]string, 0, len(s.pending))
	for _, f := range s.ctx.page.Fields {
		if _, ok := s.pending[f.OpID]; ok {
			out = append(out, f.OpID)
		}
	}
	return out
}

// Reevaluate takes the current visibility flags of a pending field, as
// reported when it gains focus or is shown, and qualifies it if it is no
// longer hidden. It returns the field's cipher type and whether the field
// was qualified by this call.
func (s *Session) Reevaluate(update *types.Field) (types.CipherType, bool) {
	if update == nil {
		return 0, false
	}
	f, ok := s.pending[update.OpID]
	if !ok {
		return 0, false
	}
	f.Viewable = update.Viewable
	f.Readonly = update.Readonly
	f.Disabled = update.Disabled
	if f.IsHidden() {
		return 0, false
	}

	delete(s.pending, f.OpID)
	s.qualify(f)
	s.q.log.Debug("Hidden field qualified",
		zap.String("opid", f.OpID),
		zap.Stringer("cipherType", f.FilledByCipherType))
	return f.FilledByCipherType, true
}

// Input returns the qualifier of the field the user typed into. It is
// computed on the first call and kept on the field afterwards. Fields not
// served by any cipher type have none.
func (s *Session) Input(opid string) types.FieldQualifier {
	f := s.ctx.page.Field(opid)
	if f == nil || f.FilledByCipherType == 0 {
		return ""
	}
	return s.q.fieldQualifier(s.ctx, f)
}

package shunt

// TranslateOption is an option for translating to postfix.
type TranslateOption interface {
	translateOption(translatectx) translatectx
}

// translatectx holds the settings for one translation.
type translatectx struct {
	// rassoc is the set of operators that associate right to left.
	rassoc map[string]bool
}

type rassocopt string

// RightAssocPow makes ^ associate right to left, so that "2^3^2" is
// "2^(3^2)". Without it, operators of equal precedence always associate left
// to right.
func RightAssocPow() TranslateOption {
	return rassocopt("^")
}

func (o rassocopt) translateOption(p translatectx) translatectx {
	// Always make a copy; presets share theirs.
	m := make(map[string]bool, len(p.rassoc)+1)
	for k, v := range p.rassoc {
		m[k] = v
	}
	m[string(o)] = true
	p.rassoc = m
	return p
}

// TranslatingPreset combines options so they can be applied repeatedly
// without rebuilding them.
func TranslatingPreset(opts ...TranslateOption) TranslateOption {
	var p translatectx
	for _, opt := range opts {
		p = opt.translateOption(p)
	}
	return &p
}

func (o *translatectx) translateOption(p translatectx) translatectx {
	if p.rassoc == nil {
		p.rassoc = o.rassoc
		return p
	}
	m := make(map[string]bool, len(p.rassoc)+len(o.rassoc))
	for k, v := range p.rassoc {
		m[k] = v
	}
	for k, v := range o.rassoc {
		m[k] = v
	}
	p.rassoc = m
	return p
}

// rightAssoc returns whether tok associates right to left.
func (p *translatectx) rightAssoc(tok Token) bool {
	return tok.Kind == KindOp && p.rassoc[tok.Text]
}

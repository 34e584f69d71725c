package lower

import (
	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

func (l *lowerer) attribute(a host.Attribute) (portable.Attribute, error) {
	sp, err := l.span(a.Span)
	if err != nil {
		return portable.Attribute{}, err
	}
	out := portable.Attribute{ID: a.ID, Span: sp, Style: portable.AttrOuter}
	if a.Style == host.AttrInner {
		out.Style = portable.AttrInner
	}
	switch a.Kind {
	case host.AttrNormal:
		out.Kind = portable.AttrNormal
		out.Normal = &portable.AttrItem{Path: a.Path, Args: a.Args, Tokens: a.Tokens}
	case host.AttrDocComment:
		kind := portable.CommentBlock
		if a.DocLine {
			kind = portable.CommentLine
		}
		out.Kind = portable.AttrDocComment
		out.Doc = &portable.DocComment{Kind: kind, Symbol: a.Doc}
	default:
		return portable.Attribute{}, l.fatalf(diag.ExpFatalUnexpectedNode, "attribute kind %d", a.Kind)
	}
	return out, nil
}

func (l *lowerer) attributes(attrs []host.Attribute) ([]portable.Attribute, error) {
	out := make([]portable.Attribute, 0, len(attrs))
	for _, a := range attrs {
		pa, err := l.attribute(a)
		if err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, nil
}

// attrsOf returns the attributes the host keeps for a syntax node.
func (l *lowerer) attrsOf(h host.HirID) ([]portable.Attribute, error) {
	return l.attributes(l.prog.Attrs(h))
}

// attrsFromScope resolves a region scope of the current owner to its syntax
// node and returns that node with its attributes. Scopes without a node
// yield no id and no attributes.
func (l *lowerer) attrsFromScope(scope host.RegionScope) (*portable.HirID, []portable.Attribute, error) {
	h, ok := l.prog.ScopeHirID(l.owner, scope)
	if !ok {
		return nil, []portable.Attribute{}, nil
	}
	id, err := l.hirID(h)
	if err != nil {
		return nil, nil, err
	}
	attrs, err := l.attrsOf(h)
	if err != nil {
		return nil, nil, err
	}
	return &id, attrs, nil
}

var scopeData = [...]portable.ScopeData{
	host.ScopeNode:        portable.ScopeNode,
	host.ScopeCallSite:    portable.ScopeCallSite,
	host.ScopeArguments:   portable.ScopeArguments,
	host.ScopeDestruction: portable.ScopeDestruction,
	host.ScopeIfThen:      portable.ScopeIfThen,
	host.ScopeRemainder:   portable.ScopeRemainder,
}

func (l *lowerer) scope(s host.RegionScope) (portable.Scope, error) {
	data, err := mapEnum(l, scopeData[:], s.Data, "scope data")
	if err != nil {
		return portable.Scope{}, err
	}
	return portable.Scope{ID: s.ID, Data: data, FirstStatement: s.FirstStatement}, nil
}

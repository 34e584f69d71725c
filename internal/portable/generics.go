package portable

import (
	"portast/internal/ident"
	"portast/internal/source"
)

type GenericParamKind uint8

const (
	ParamLifetime GenericParamKind = iota
	ParamType
	ParamConst
)

var genericParamKindNames = []string{"Lifetime", "Type", "Const"}

func (k GenericParamKind) String() string               { return enumName(genericParamKindNames, int(k)) }
func (k GenericParamKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// GenericParam is a declared lifetime, type or const parameter.
type GenericParam struct {
	HirID      HirID            `json:"hir_id" msgpack:"hir_id"`
	DefID      ident.DefID      `json:"def_id" msgpack:"def_id"`
	Name       string           `json:"name" msgpack:"name"`
	Span       source.Span      `json:"span" msgpack:"span"`
	Kind       GenericParamKind `json:"kind" msgpack:"kind"`
	Default    *Ty              `json:"default,omitempty" msgpack:"default,omitempty"`
	Synthetic  bool             `json:"synthetic,omitempty" msgpack:"synthetic,omitempty"`
	ConstTy    *Ty              `json:"const_ty,omitempty" msgpack:"const_ty,omitempty"`
	ConstDef   *ident.DefID     `json:"const_default,omitempty" msgpack:"const_default,omitempty"`
	Attributes []Attribute      `json:"attributes" msgpack:"attributes"`
}

type GenericBoundKind uint8

const (
	BoundTrait GenericBoundKind = iota
	BoundOutlives
)

var genericBoundKindNames = []string{"Trait", "Outlives"}

func (k GenericBoundKind) String() string               { return enumName(genericBoundKindNames, int(k)) }
func (k GenericBoundKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// GenericBound is a bound written in source: a trait or an outlived lifetime.
type GenericBound struct {
	Kind     GenericBoundKind `json:"kind" msgpack:"kind"`
	Trait    *TraitRef        `json:"trait,omitempty" msgpack:"trait,omitempty"`
	Maybe    bool             `json:"maybe,omitempty" msgpack:"maybe,omitempty"`
	Lifetime *Region          `json:"lifetime,omitempty" msgpack:"lifetime,omitempty"`
	Span     source.Span      `json:"span" msgpack:"span"`
}

type WherePredicateKind uint8

const (
	WhereBound WherePredicateKind = iota
	WhereRegion
	WhereEq
)

var wherePredicateKindNames = []string{"Bound", "Region", "Eq"}

func (k WherePredicateKind) String() string               { return enumName(wherePredicateKindNames, int(k)) }
func (k WherePredicateKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// WherePredicate is a where-clause entry or an inline parameter bound.
type WherePredicate struct {
	Kind         WherePredicateKind `json:"kind" msgpack:"kind"`
	Span         source.Span        `json:"span" msgpack:"span"`
	BoundedTy    *Ty                `json:"bounded_ty,omitempty" msgpack:"bounded_ty,omitempty"`
	BoundParams  []GenericParam     `json:"bound_generic_params,omitempty" msgpack:"bound_generic_params,omitempty"`
	Bounds       []GenericBound     `json:"bounds,omitempty" msgpack:"bounds,omitempty"`
	Lifetime     *Region            `json:"lifetime,omitempty" msgpack:"lifetime,omitempty"`
	Lhs          *Ty                `json:"lhs_ty,omitempty" msgpack:"lhs_ty,omitempty"`
	Rhs          *Ty                `json:"rhs_ty,omitempty" msgpack:"rhs_ty,omitempty"`
	FromGenerics bool               `json:"origin_generics,omitempty" msgpack:"origin_generics,omitempty"`
}

// Generics is the generic parameter list and where clause of a declaration,
// together with the bounds the host inferred for it.
type Generics struct {
	Params          []GenericParam   `json:"params" msgpack:"params"`
	Predicates      []WherePredicate `json:"predicates" msgpack:"predicates"`
	HasWhereClause  bool             `json:"has_where_clause" msgpack:"has_where_clause"`
	WhereClauseSpan source.Span      `json:"where_clause_span" msgpack:"where_clause_span"`
	Span            source.Span      `json:"span" msgpack:"span"`
	Bounds          GenericBounds    `json:"bounds" msgpack:"bounds"`
}

type BoundsKind uint8

const (
	// BoundsPredicates are the predicates of an ordinary declaration.
	BoundsPredicates BoundsKind = iota
	// BoundsItem are the bounds of an associated or opaque type.
	BoundsItem
)

var boundsKindNames = []string{"Predicates", "ItemBounds"}

func (k BoundsKind) String() string               { return enumName(boundsKindNames, int(k)) }
func (k BoundsKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// GenericBounds is the host's view of what must hold for a declaration.
type GenericBounds struct {
	Kind       BoundsKind  `json:"kind" msgpack:"kind"`
	Predicates []Predicate `json:"predicates" msgpack:"predicates"`
}

type PredicateKind uint8

const (
	PredTrait PredicateKind = iota
	PredRegionOutlives
	PredTypeOutlives
	PredProjection
	PredWellFormed
	PredObjectSafe
	PredClosureKind
	PredSubtype
	PredCoerce
	PredConstEvaluatable
	PredConstEquate
	PredTypeWellFormedFromEnv
	PredAmbiguous
)

var predicateKindNames = []string{
	"Trait", "RegionOutlives", "TypeOutlives", "Projection", "WellFormed",
	"ObjectSafe", "ClosureKind", "Subtype", "Coerce", "ConstEvaluatable",
	"ConstEquate", "TypeWellFormedFromEnv", "Ambiguous",
}

func (k PredicateKind) String() string               { return enumName(predicateKindNames, int(k)) }
func (k PredicateKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Predicate is a single clause. Predicates that quantify over bound
// variables are not modeled and come out as PredAmbiguous.
type Predicate struct {
	Kind       PredicateKind `json:"kind" msgpack:"kind"`
	Trait      *TraitRef     `json:"trait,omitempty" msgpack:"trait,omitempty"`
	Negative   bool          `json:"negative,omitempty" msgpack:"negative,omitempty"`
	Ty         *Ty           `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Region     *Region       `json:"region,omitempty" msgpack:"region,omitempty"`
	Region2    *Region       `json:"region2,omitempty" msgpack:"region2,omitempty"`
	Projection *AliasTy      `json:"projection,omitempty" msgpack:"projection,omitempty"`
	Term       *Ty           `json:"term,omitempty" msgpack:"term,omitempty"`
	Text       string        `json:"text,omitempty" msgpack:"text,omitempty"`
}

// Crate is the result of one export run: the items in source order and the
// spans that were emitted while producing them.
type Crate struct {
	Name          string        `json:"name" msgpack:"name"`
	Items         []Item        `json:"items" msgpack:"items"`
	ExportedSpans []source.Span `json:"exported_spans" msgpack:"exported_spans"`
}

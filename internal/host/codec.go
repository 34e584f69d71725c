package host

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Ty, Expr, Pat and Item carry interface payloads. On the wire the payload is
// a nested msgpack value next to the kind tag; the kind selects the Go type
// to decode it into.

type payloadFunc func(raw msgpack.RawMessage) (any, error)

func payload[T any](raw msgpack.RawMessage) (any, error) {
	var v T
	if err := msgpack.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func isNilRaw(raw msgpack.RawMessage) bool {
	return len(raw) == 0 || (len(raw) == 1 && raw[0] == 0xc0)
}

func decodePayload[K ~uint8](what string, table map[K]payloadFunc, kind K, raw msgpack.RawMessage) (any, error) {
	fn, ok := table[kind]
	if !ok {
		if !isNilRaw(raw) {
			return nil, fmt.Errorf("%s kind %d: unexpected payload", what, kind)
		}
		return nil, nil
	}
	if isNilRaw(raw) {
		return nil, fmt.Errorf("%s kind %d: missing payload", what, kind)
	}
	v, err := fn(raw)
	if err != nil {
		return nil, fmt.Errorf("%s kind %d: %w", what, kind, err)
	}
	return v, nil
}

func encodePayload(data any) (msgpack.RawMessage, error) {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

var tyPayloads = map[TyKind]payloadFunc{
	TyInt:              payload[IntData],
	TyUint:             payload[UintData],
	TyFloat:            payload[FloatData],
	TyAdt:              payload[AdtData],
	TyForeign:          payload[ForeignData],
	TyArray:            payload[ArrayData],
	TySlice:            payload[SliceData],
	TyRawPtr:           payload[RawPtrData],
	TyRef:              payload[RefData],
	TyFnDef:            payload[FnDefData],
	TyFnPtr:            payload[FnPtrData],
	TyDynamic:          payload[DynamicData],
	TyClosure:          payload[ClosureData],
	TyGenerator:        payload[GeneratorData],
	TyGeneratorWitness: payload[InferData],
	TyTuple:            payload[TupleData],
	TyAlias:            payload[AliasData],
	TyParam:            payload[ParamData],
	TyBound:            payload[BoundData],
	TyPlaceholder:      payload[PlaceholderData],
	TyInfer:            payload[InferData],
}

var exprPayloads = map[ExprKind]payloadFunc{
	ExprScope:               payload[ScopeExprData],
	ExprBox:                 payload[ValueData],
	ExprIf:                  payload[IfData],
	ExprCall:                payload[CallData],
	ExprDeref:               payload[ValueData],
	ExprBinary:              payload[BinaryData],
	ExprLogicalOp:           payload[BinaryData],
	ExprUnary:               payload[ValueData],
	ExprCast:                payload[ValueData],
	ExprUse:                 payload[ValueData],
	ExprNeverToAny:          payload[ValueData],
	ExprPointer:             payload[ValueData],
	ExprLoop:                payload[ValueData],
	ExprLet:                 payload[LetData],
	ExprMatch:               payload[MatchData],
	ExprBlock:               payload[BlockData],
	ExprAssign:              payload[BinaryData],
	ExprAssignOp:            payload[BinaryData],
	ExprField:               payload[FieldData],
	ExprIndex:               payload[BinaryData],
	ExprVarRef:              payload[VarRefData],
	ExprUpvarRef:            payload[UpvarRefData],
	ExprBorrow:              payload[BorrowData],
	ExprAddressOf:           payload[BorrowData],
	ExprBreak:               payload[JumpData],
	ExprContinue:            payload[JumpData],
	ExprReturn:              payload[JumpData],
	ExprConstBlock:          payload[ConstBlockData],
	ExprRepeat:              payload[RepeatData],
	ExprArray:               payload[FieldsData],
	ExprTuple:               payload[FieldsData],
	ExprAdt:                 payload[AdtExprData],
	ExprPlaceTypeAscription: payload[AscriptionData],
	ExprValueTypeAscription: payload[AscriptionData],
	ExprClosure:             payload[ClosureExprData],
	ExprLiteral:             payload[LiteralData],
	ExprNonHirLiteral:       payload[NonHirLiteralData],
	ExprZstLiteral:          payload[ZstLiteralData],
	ExprNamedConst:          payload[NamedConstData],
	ExprConstParam:          payload[ConstParamData],
	ExprStaticRef:           payload[StaticRefData],
	ExprInlineAsm:           payload[OpaqueData],
	ExprOffsetOf:            payload[OpaqueData],
	ExprThreadLocalRef:      payload[OpaqueData],
	ExprYield:               payload[ValueData],
}

var patPayloads = map[PatKind]payloadFunc{
	PatAscribeUserType: payload[AscribeData],
	PatBinding:         payload[BindingData],
	PatVariant:         payload[VariantPatData],
	PatLeaf:            payload[VariantPatData],
	PatDeref:           payload[DerefPatData],
	PatConstant:        payload[ConstantPatData],
	PatRange:           payload[RangePatData],
	PatSlice:           payload[SlicePatData],
	PatArray:           payload[SlicePatData],
	PatOr:              payload[OrPatData],
}

var itemPayloads = map[ItemKind]payloadFunc{
	ItemExternCrate: payload[ExternCrateData],
	ItemUse:         payload[UseData],
	ItemStatic:      payload[StaticData],
	ItemConst:       payload[ConstData],
	ItemFn:          payload[FnData],
	ItemMacro:       payload[MacroData],
	ItemMod:         payload[ModData],
	ItemForeignMod:  payload[ForeignModData],
	ItemGlobalAsm:   payload[GlobalAsmData],
	ItemTyAlias:     payload[TyAliasData],
	ItemOpaqueTy:    payload[OpaqueTyData],
	ItemEnum:        payload[EnumData],
	ItemStruct:      payload[StructData],
	ItemUnion:       payload[StructData],
	ItemTrait:       payload[TraitData],
	ItemTraitAlias:  payload[TraitAliasData],
	ItemImpl:        payload[ImplData],
}

type tyWire struct {
	Kind TyKind             `msgpack:"kind"`
	Data msgpack.RawMessage `msgpack:"data"`
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (t Ty) EncodeMsgpack(enc *msgpack.Encoder) error {
	raw, err := encodePayload(t.Data)
	if err != nil {
		return err
	}
	return enc.Encode(tyWire{Kind: t.Kind, Data: raw})
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (t *Ty) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w tyWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	data, err := decodePayload("ty", tyPayloads, w.Kind, w.Data)
	if err != nil {
		return err
	}
	t.Kind = w.Kind
	t.Data, _ = data.(TyData)
	return nil
}

type exprWire struct {
	Kind ExprKind           `msgpack:"kind"`
	Ty   Ty                 `msgpack:"ty"`
	Span Span               `msgpack:"span"`
	Data msgpack.RawMessage `msgpack:"data"`
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (e Expr) EncodeMsgpack(enc *msgpack.Encoder) error {
	raw, err := encodePayload(e.Data)
	if err != nil {
		return err
	}
	return enc.Encode(exprWire{Kind: e.Kind, Ty: e.Ty, Span: e.Span, Data: raw})
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (e *Expr) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w exprWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	data, err := decodePayload("expr", exprPayloads, w.Kind, w.Data)
	if err != nil {
		return err
	}
	*e = Expr{Kind: w.Kind, Ty: w.Ty, Span: w.Span}
	e.Data, _ = data.(ExprData)
	return nil
}

type patWire struct {
	Kind PatKind            `msgpack:"kind"`
	Ty   Ty                 `msgpack:"ty"`
	Span Span               `msgpack:"span"`
	Data msgpack.RawMessage `msgpack:"data"`
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (p Pat) EncodeMsgpack(enc *msgpack.Encoder) error {
	raw, err := encodePayload(p.Data)
	if err != nil {
		return err
	}
	return enc.Encode(patWire{Kind: p.Kind, Ty: p.Ty, Span: p.Span, Data: raw})
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (p *Pat) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w patWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	data, err := decodePayload("pat", patPayloads, w.Kind, w.Data)
	if err != nil {
		return err
	}
	*p = Pat{Kind: w.Kind, Ty: w.Ty, Span: w.Span}
	p.Data, _ = data.(PatData)
	return nil
}

type itemWire struct {
	Owner   DefID              `msgpack:"owner"`
	Name    string             `msgpack:"name"`
	Span    Span               `msgpack:"span"`
	VisSpan Span               `msgpack:"vis_span"`
	Kind    ItemKind           `msgpack:"kind"`
	Data    msgpack.RawMessage `msgpack:"data"`
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (it Item) EncodeMsgpack(enc *msgpack.Encoder) error {
	raw, err := encodePayload(it.Data)
	if err != nil {
		return err
	}
	return enc.Encode(itemWire{Owner: it.Owner, Name: it.Name, Span: it.Span, VisSpan: it.VisSpan, Kind: it.Kind, Data: raw})
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (it *Item) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w itemWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	data, err := decodePayload("item", itemPayloads, w.Kind, w.Data)
	if err != nil {
		return err
	}
	*it = Item{Owner: w.Owner, Name: w.Name, Span: w.Span, VisSpan: w.VisSpan, Kind: w.Kind}
	it.Data, _ = data.(ItemData)
	return nil
}

package lower

import (
	"strconv"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/portable"
)

func (l *lowerer) adtDef(def host.DefID) (*host.AdtDef, error) {
	adt, err := l.prog.AdtDef(def)
	if err != nil {
		return nil, l.hostErr("adt "+def.String(), err)
	}
	return adt, nil
}

func (l *lowerer) variantAt(adt *host.AdtDef, index uint32) (*host.VariantDef, error) {
	if int(index) >= len(adt.Variants) {
		return nil, l.fatalf(diag.ExpFatalUnexpectedNode, "variant %d of %s out of range", index, adt.Def)
	}
	return &adt.Variants[index], nil
}

// isRecord: a variant is a record as soon as one field has a real name.
func isRecord(fields []host.FieldDef) bool {
	for _, f := range fields {
		if _, err := strconv.ParseUint(f.Name, 10, 64); err != nil {
			return true
		}
	}
	return false
}

// variantInformation describes variant index of the algebraic type def.
func (l *lowerer) variantInformation(def host.DefID, index uint32) (portable.VariantInformation, error) {
	adt, err := l.adtDef(def)
	if err != nil {
		return portable.VariantInformation{}, err
	}
	v, err := l.variantAt(adt, index)
	if err != nil {
		return portable.VariantInformation{}, err
	}
	typ, err := l.defID(adt.Def)
	if err != nil {
		return portable.VariantInformation{}, err
	}
	variant, err := l.defID(v.Def)
	if err != nil {
		return portable.VariantInformation{}, err
	}
	ns, ok := typ.Parent()
	if !ok {
		return portable.VariantInformation{}, l.fatalf(diag.ExpFatalTypeWithoutPath, "type %s has an empty path", typ)
	}
	isStruct := adt.Kind == host.AdtStruct
	variantIsRecord := isRecord(v.Fields)
	return portable.VariantInformation{
		TypeNamespace:   ns,
		Typ:             typ,
		Variant:         variant,
		VariantIndex:    index,
		TypIsRecord:     isStruct && variantIsRecord,
		VariantIsRecord: variantIsRecord,
		TypIsStruct:     isStruct,
	}, nil
}

// fieldDefID resolves field index of a variant to the field definition.
func (l *lowerer) fieldDefID(v *host.VariantDef, field uint32) (ident.DefID, error) {
	if int(field) >= len(v.Fields) {
		return ident.DefID{}, l.fatalf(diag.ExpFatalFieldAccess, "variant %s has no field %d", v.Name, field)
	}
	return l.defID(v.Fields[field].Def)
}

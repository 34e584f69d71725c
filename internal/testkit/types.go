package testkit

import "portast/internal/host"

func Bool() host.Ty { return host.Ty{Kind: host.TyBool} }

func Int(t host.IntTy) host.Ty {
	return host.Ty{Kind: host.TyInt, Data: host.IntData{Int: t}}
}

func Uint(t host.UintTy) host.Ty {
	return host.Ty{Kind: host.TyUint, Data: host.UintData{Uint: t}}
}

func Param(index uint32, name string) host.Ty {
	return host.Ty{Kind: host.TyParam, Data: host.ParamData{Index: index, Name: name}}
}

func Tuple(elems ...host.Ty) host.Ty {
	return host.Ty{Kind: host.TyTuple, Data: host.TupleData{Elems: elems}}
}

// Unit is the empty tuple.
func Unit() host.Ty { return Tuple() }

func Adt(def host.DefID, args ...host.GenericArg) host.Ty {
	return host.Ty{Kind: host.TyAdt, Data: host.AdtData{Def: def, Args: args}}
}

// FnDef is the zero-sized type of function item def.
func FnDef(def host.DefID) host.Ty {
	return host.Ty{Kind: host.TyFnDef, Data: host.FnDefData{Def: def}}
}

func TypeArg(t host.Ty) host.GenericArg {
	return host.GenericArg{Kind: host.ArgType, Type: &t}
}

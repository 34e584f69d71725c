package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Фатальные ошибки трансляции: элемент целиком пропускается
	ExpInfo                 Code = 1000
	ExpFatalScope           Code = 1001
	ExpFatalFieldAccess     Code = 1002
	ExpFatalCallShape       Code = 1003
	ExpFatalLeafPattern     Code = 1004
	ExpFatalUnknownLocal    Code = 1005
	ExpFatalTypeWithoutPath Code = 1006
	ExpFatalScalarType      Code = 1007
	ExpFatalHostQuery       Code = 1008
	ExpFatalUnexpectedNode  Code = 1009

	// Recoverable conditions
	ExpMacroArgUnreadable Code = 2001
	ExpAmbiguousPredicate Code = 2002
	ExpUnreachableShape   Code = 2003
	ExpConstNotEvaluated  Code = 2004

	// Item boundary
	ExpItemFailed Code = 3001

	// I/O and input
	IOLoadSnapshot  Code = 4001
	IOWriteOutput   Code = 4002
	IOSchemaVersion Code = 4003

	// Project configuration
	ProjInfo        Code = 5000
	ProjBadManifest Code = 5001
	ProjBadPattern  Code = 5002
	ProjEnvOverride Code = 5003

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		ExpInfo:                 "Export information",
		ExpFatalScope:           "scope wrapper was not eliminated",
		ExpFatalFieldAccess:     "field access on a type that is neither an ADT nor a tuple",
		ExpFatalCallShape:       "callee is neither a function pointer nor a function item",
		ExpFatalLeafPattern:     "leaf pattern on a type that is neither an ADT nor a tuple",
		ExpFatalUnknownLocal:    "reference to a local that was never bound",
		ExpFatalTypeWithoutPath: "type definition without a namespace",
		ExpFatalScalarType:      "scalar of a non-scalar type",
		ExpFatalHostQuery:       "host query failed",
		ExpFatalUnexpectedNode:  "node kind cannot appear here",
		ExpMacroArgUnreadable:   "macro call argument cannot be read back from source",
		ExpAmbiguousPredicate:   "predicate with bound variables is not modeled",
		ExpUnreachableShape:     "supposedly unreachable shape",
		ExpConstNotEvaluated:    "constant could not be evaluated",
		ExpItemFailed:           "item was not exported",
		IOLoadSnapshot:          "cannot load host snapshot",
		IOWriteOutput:           "cannot write output",
		IOSchemaVersion:         "unsupported snapshot schema",
		ProjInfo:                "Project information",
		ProjBadManifest:         "invalid portast.toml",
		ProjBadPattern:          "invalid macro pattern",
		ProjEnvOverride:         "invalid options in environment",
		ObsInfo:                 "Observability information",
		ObsTimings:              "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 4000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsFatal reports whether c aborts the item it was raised in.
func (c Code) IsFatal() bool {
	return c > ExpInfo && c < ExpMacroArgUnreadable
}

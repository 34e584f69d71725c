package source

import "fmt"

// Loc is a human-readable position: 1-based line, 0-based character column.
type Loc struct {
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
}

// Less orders locations by line, then column.
func (l Loc) Less(other Loc) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Col < other.Col
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// FileNameKind enumerates the origins a span can point at.
type FileNameKind uint8

const (
	// FileNameReal is an on-disk file, possibly remapped.
	FileNameReal FileNameKind = iota
	FileNameQuoteExpansion
	FileNameAnon
	FileNameMacroExpansion
	FileNameProcMacroSourceCode
	FileNameCfgSpec
	FileNameCliCrateAttr
	FileNameCustom
	FileNameDocTest
	FileNameInlineAsm
)

// String returns a human-readable name for the file name kind.
func (k FileNameKind) String() string {
	switch k {
	case FileNameReal:
		return "Real"
	case FileNameQuoteExpansion:
		return "QuoteExpansion"
	case FileNameAnon:
		return "Anon"
	case FileNameMacroExpansion:
		return "MacroExpansion"
	case FileNameProcMacroSourceCode:
		return "ProcMacroSourceCode"
	case FileNameCfgSpec:
		return "CfgSpec"
	case FileNameCliCrateAttr:
		return "CliCrateAttr"
	case FileNameCustom:
		return "Custom"
	case FileNameDocTest:
		return "DocTest"
	case FileNameInlineAsm:
		return "InlineAsm"
	default:
		return "Unknown"
	}
}

// RealFileName is either a plain local path or a remapped (virtualized) pair.
// Remapped is true for the pair form; LocalPath may then be empty.
type RealFileName struct {
	LocalPath   string `json:"local_path,omitempty" msgpack:"local_path"`
	Remapped    bool   `json:"remapped,omitempty" msgpack:"remapped"`
	VirtualName string `json:"virtual_name,omitempty" msgpack:"virtual_name"`
}

// FileName identifies where a span comes from. The struct is comparable so
// spans can be used as map keys.
//
// Real uses Real; Custom and DocTest use Text; the synthetic origins use Hash.
type FileName struct {
	Kind FileNameKind `json:"kind" msgpack:"kind"`
	Real RealFileName `json:"real,omitempty" msgpack:"real"`
	Hash uint64       `json:"hash,omitempty" msgpack:"hash"`
	Text string       `json:"text,omitempty" msgpack:"text"`
}

// LocalFile builds the file name of a plain on-disk path.
func LocalFile(path string) FileName {
	return FileName{Kind: FileNameReal, Real: RealFileName{LocalPath: path}}
}

// LocalPath returns the on-disk path when the file name is a plain local path.
func (f FileName) LocalPath() (string, bool) {
	if f.Kind != FileNameReal || f.Real.Remapped || f.Real.LocalPath == "" {
		return "", false
	}
	return f.Real.LocalPath, true
}

func (f FileName) String() string {
	switch f.Kind {
	case FileNameReal:
		if f.Real.Remapped {
			return f.Real.VirtualName
		}
		return f.Real.LocalPath
	case FileNameCustom, FileNameDocTest:
		return fmt.Sprintf("<%s:%s>", f.Kind, f.Text)
	default:
		return fmt.Sprintf("<%s:%x>", f.Kind, f.Hash)
	}
}

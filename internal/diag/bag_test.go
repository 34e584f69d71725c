package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/diag"
	"portast/internal/source"
)

func span(file string, line, lo, hi uint32) source.Span {
	return source.Span{
		Lo:       source.Loc{Line: line, Col: lo},
		Hi:       source.Loc{Line: line, Col: hi},
		Filename: source.LocalFile(file),
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.BagReporter{Bag: bag}
	diag.ReportWarning(r, diag.ExpUnreachableShape, span("b.rs", 1, 0, 1), "late").Emit()
	diag.ReportError(r, diag.ExpFatalScope, span("a.rs", 2, 0, 1), "second").Emit()
	diag.ReportError(r, diag.ExpFatalScope, span("a.rs", 1, 4, 5), "first").Emit()
	diag.ReportError(r, diag.ExpFatalScope, span("a.rs", 1, 4, 5), "again").Emit()

	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.Equal(t, "late", items[2].Message)
	assert.True(t, bag.HasErrors())
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(1)
	assert.True(t, bag.Add(diag.NewError(diag.ExpItemFailed, source.Span{}, "one")))
	assert.False(t, bag.Add(diag.NewError(diag.ExpItemFailed, source.Span{}, "two")))
	assert.Equal(t, 1, bag.Len())
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := diag.NewBag(4)
	b := diag.ReportInfo(diag.BagReporter{Bag: bag}, diag.ExpInfo, source.Span{}, "hello").
		WithNote(span("a.rs", 1, 0, 1), "here")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	assert.Len(t, bag.Items()[0].Notes, 1)
	assert.False(t, bag.HasWarnings())
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(4)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	sp := span("a.rs", 3, 1, 2)
	r.Report(diag.ExpAmbiguousPredicate, diag.SevWarning, sp, "bound vars", nil)
	r.Report(diag.ExpAmbiguousPredicate, diag.SevWarning, sp, "bound vars", nil)
	r.Report(diag.ExpAmbiguousPredicate, diag.SevWarning, sp, "other", nil)
	assert.Equal(t, 2, bag.Len())
}

func TestCodeIDs(t *testing.T) {
	assert.Equal(t, "EXP1001", diag.ExpFatalScope.ID())
	assert.Equal(t, "EXP3001", diag.ExpItemFailed.ID())
	assert.Equal(t, "IO4001", diag.IOLoadSnapshot.ID())
	assert.True(t, diag.ExpFatalUnknownLocal.IsFatal())
	assert.False(t, diag.ExpMacroArgUnreadable.IsFatal())
	assert.Equal(t, "Unknown error", diag.Code(999).Title())
}

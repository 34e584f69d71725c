// Package diag defines the diagnostic model shared by the exporter phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     while loading host snapshots and lowering them to the portable tree.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; collection per snapshot lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the portable source.Span the finding is about.
//   - Notes – optional secondary spans/messages for additional context.
//
// Codes in the EXP1xxx range are fatal for the item that raised them: the
// lowering of that item stops and an ExpItemFailed error is reported at the
// item boundary. EXP2xxx codes are warnings; lowering continues with a
// placeholder.
//
// # Emitting diagnostics
//
// Phases construct a ReportBuilder via NewReportBuilder (or the helpers
// ReportError/ReportWarning/ReportInfo), chain WithNote and call Emit. When no
// additional metadata is needed, phases may call Reporter.Report directly.
// BagReporter aggregates diagnostics into a Bag, which supports sorting and
// deduplication; DedupReporter filters repeats before they reach the bag.
package diag

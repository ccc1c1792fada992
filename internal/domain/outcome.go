package domain

// Redirect tells the client to go elsewhere.
type Redirect struct {
	Destination string
	Permanent   bool
}

type outcomeKind int

const (
	kindNotFound outcomeKind = iota
	kindRedirect
	kindProps
)

// Outcome is the single result of resolving one request: a redirect, render
// props, or not-found. The zero value is NotFound. Build one with
// RedirectOutcome, PropsOutcome or NotFoundOutcome and consume it with Visit.
type Outcome struct {
	kind     outcomeKind
	redirect Redirect
	record   *ContentRecord
}

// OutcomeVisitor has one method per Outcome variant.
type OutcomeVisitor interface {
	Redirect(r Redirect)
	Props(record *ContentRecord)
	NotFound()
}

// RedirectOutcome builds a Redirect outcome.
func RedirectOutcome(r Redirect) Outcome {
	return Outcome{kind: kindRedirect, redirect: r}
}

// PropsOutcome builds a Props outcome. A nil record yields NotFound.
func PropsOutcome(record *ContentRecord) Outcome {
	if record == nil {
		return NotFoundOutcome()
	}
	return Outcome{kind: kindProps, record: record}
}

// NotFoundOutcome builds a NotFound outcome.
func NotFoundOutcome() Outcome {
	return Outcome{kind: kindNotFound}
}

// Visit calls exactly one method of v.
func (o Outcome) Visit(v OutcomeVisitor) {
	switch o.kind {
	case kindRedirect:
		v.Redirect(o.redirect)
	case kindProps:
		v.Props(o.record)
	default:
		v.NotFound()
	}
}

// IsRedirect reports the Redirect variant and its payload.
func (o Outcome) IsRedirect() (Redirect, bool) {
	return o.redirect, o.kind == kindRedirect
}

// IsProps reports the Props variant and its record.
func (o Outcome) IsProps() (*ContentRecord, bool) {
	return o.record, o.kind == kindProps
}

// IsNotFound reports the NotFound variant.
func (o Outcome) IsNotFound() bool {
	return o.kind == kindNotFound
}

// String names the variant, for logs and metric labels.
func (o Outcome) String() string {
	switch o.kind {
	case kindRedirect:
		return "redirect"
	case kindProps:
		return "props"
	default:
		return "not_found"
	}
}

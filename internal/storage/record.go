package storage

import (
	"github.com/michaelbrown/codeproxy/internal/compile"
)

// NewSubmission builds the history record for one finished compile. Exactly
// one of res and err is expected to be set.
func NewSubmission(id string, req compile.Request, res *compile.Result, err error) *Submission {
	sub := &Submission{
		ID:         id,
		LanguageID: req.LanguageID,
		SourceCode: req.SourceCode,
		Stdin:      req.Stdin,
	}
	if err != nil {
		sub.Output = compile.OutputOf(err)
		sub.Outcome = Outcome(compile.KindOf(err))
		return sub
	}
	if res != nil {
		sub.Output = res.Output
		sub.Status = res.Status.Description
		sub.DurationMS = res.Duration.Milliseconds()
	}
	sub.Outcome = OutcomeOK
	return sub
}

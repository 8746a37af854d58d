package worker

// userFacingError is the single boundary between internal errors and reply
// content. Everything the issuing channel sees about a failure passes
// through here, so redaction of internal detail only ever touches this
// function.
func userFacingError(err error) string {
	return err.Error()
}

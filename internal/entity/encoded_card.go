package entity

// EncodedCard is the result of the encode pipeline: the raw PNG bytes and
// the self-contained data URI string handed back to the caller.
type EncodedCard struct {
	PNG     []byte
	DataURI string
}

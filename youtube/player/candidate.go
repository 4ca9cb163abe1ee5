package player

// DefaultSignatureParam is the query parameter carrying a deciphered
// signature when the cipher names none.
const DefaultSignatureParam = "sig"

// Candidate is one catalog format found on the page. Its signature, when
// pending, is applied at most once.
type Candidate struct {
	Itag int
	URL  string
	// Signature is the encrypted signature; empty for direct URLs.
	Signature string
	// SignatureParam is the query parameter the deciphered signature goes into.
	SignatureParam string

	applied bool
}

// Pending reports whether the candidate still waits for a deciphered signature.
func (c *Candidate) Pending() bool {
	return c.Signature != "" && !c.applied
}

// Apply appends the deciphered signature to the URL. It returns false and
// leaves the candidate untouched if nothing is pending.
func (c *Candidate) Apply(sig string) bool {
	if !c.Pending() {
		return false
	}
	param := c.SignatureParam
	if param == "" {
		param = DefaultSignatureParam
	}
	c.URL += "&" + param + "=" + sig
	c.applied = true
	return true
}

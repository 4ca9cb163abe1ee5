// Package ytextract turns a YouTube watch URL, short link or bare video id
// into playable stream URLs keyed by itag, together with basic metadata.
//
// One extraction fetches the watch page and parses the embedded player
// response. Formats with an encrypted signature are deciphered by a script
// synthesized from the player asset. The script is kept in memory and in a
// cache file, and all pending signatures go to a pluggable evaluator in a
// single call.
//
// Basic usage:
//
//	ex := ytextract.New()
//	res, err := ex.Extract("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	if err != nil {
//		// errors.Is(err, errs.ErrDecipherTimeout), errs.IsNetwork(err), ...
//	}
//	u, _ := res.URL(18)
//
// Options are chainable:
//
//	ex := ytextract.New().
//		WithEvalTimeout(3 * time.Second).
//		WithCache("/var/cache/ytextract", 24*time.Hour)
package ytextract

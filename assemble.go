package ytextract

import (
	"strings"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/types"
	"github.com/ytget/ytextract/youtube/player"
)

// splitResults splits the evaluator output into one signature per line.
// A single trailing empty segment is dropped.
func splitResults(out string) []string {
	lines := strings.Split(out, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// applySignatures pairs lines with pending candidates by position. Extra
// lines are ignored; candidates without a line stay pending. It returns the
// number applied.
func applySignatures(pending []*player.Candidate, lines []string) int {
	n := min(len(pending), len(lines))
	applied := 0
	for i := 0; i < n; i++ {
		if pending[i].Apply(lines[i]) {
			applied++
		}
	}
	return applied
}

// assemble builds the result from every candidate that no longer waits for
// a signature, in page order.
func assemble(resp *player.Response) (*types.Result, error) {
	res := &types.Result{
		Meta:           resp.Meta,
		URLs:           make(map[int]string, len(resp.Candidates)),
		HLSManifestURL: resp.HLSManifestURL,
	}
	for _, c := range resp.Candidates {
		if c.Pending() {
			continue
		}
		if _, dup := res.URLs[c.Itag]; dup {
			continue
		}
		res.URLs[c.Itag] = c.URL
		res.Itags = append(res.Itags, c.Itag)
	}
	if len(res.URLs) == 0 {
		return nil, errs.New(errs.CodeNoPlayableFormats, "no playable formats", resp.Meta.ID)
	}
	return res, nil
}

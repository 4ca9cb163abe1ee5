package cipher

import (
	"regexp"
	"strings"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/internal/textscan"
)

var (
	assetEscapedRe = regexp.MustCompile(`\\/s\\/player\\/([^"]+?)\.js`)
	assetPlainRe   = regexp.MustCompile(`/s/player/([^"]+?)\.js`)

	entryFuncRe  = regexp.MustCompile(`(?:\b|[^a-zA-Z0-9$])([a-zA-Z0-9$]{1,4})\s*=\s*function\(\s*a\s*\)\s*\{\s*a\s*=\s*a\.split\(\s*""\s*\)`)
	entryDeclRe  = regexp.MustCompile(`function\s+([a-zA-Z0-9$]{1,4})\(\s*a\s*\)\s*\{\s*a\s*=\s*a\.split\(\s*""\s*\)`)
	objectCallRe = regexp.MustCompile(`([{; =])([a-zA-Z$][a-zA-Z0-9$]{0,2})\.([a-zA-Z$][a-zA-Z0-9$]{0,2})\(`)
	bareCallRe   = regexp.MustCompile(`([{; =])([a-zA-Z$_][a-zA-Z0-9$]{0,2})\(`)
	paramListRe  = regexp.MustCompile(`function(?:\s+[a-zA-Z0-9$_]+)?\s*\(([^)]*)\)`)
)

// AssetPath returns the player script path referenced by page, such as
// "/s/player/abcd1234/player_ias.vflset/en_US/base.js". The escaped-slash
// form used inside inline JSON is tried before the plain one.
func AssetPath(page string) (string, error) {
	m := assetEscapedRe.FindString(page)
	if m == "" {
		m = assetPlainRe.FindString(page)
	}
	if m == "" {
		return "", errs.ErrDecipherAssetNotFound
	}
	return strings.ReplaceAll(m, `\/`, "/"), nil
}

// Synthesize builds a self-contained decipher script from the player script
// js. It returns the entry function name and the assembled script, which
// lists helper definitions after the entry function in discovery order.
func Synthesize(js string) (name string, script string, err error) {
	js = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(js)

	name, entry, err := entryFunction(js)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	b.WriteString(entry)
	queue := []string{entry}
	for len(queue) > 0 {
		body := queue[0]
		queue = queue[1:]
		for _, def := range dependencies(js, body, b.String()) {
			if strings.Contains(b.String(), def) {
				continue
			}
			b.WriteString(def)
			queue = append(queue, def)
		}
	}
	return name, b.String(), nil
}

// entryFunction locates the decipher routine and returns its name and full
// definition, as either "var NAME=function(a){...};" or "function NAME(a){...};".
// The body is cut from the located match itself.
func entryFunction(js string) (name, def string, err error) {
	if loc := entryFuncRe.FindStringSubmatchIndex(js); loc != nil {
		name = js[loc[2]:loc[3]]
		kw := loc[3] + strings.Index(js[loc[3]:], "function")
		if out, ok := cutBody(js, "var "+name+"=", kw); ok {
			return name, out, nil
		}
		return "", "", errs.New(errs.CodeDecipherFunctionNotFound, "decipher function not found", name)
	}
	if loc := entryDeclRe.FindStringSubmatchIndex(js); loc != nil {
		name = js[loc[2]:loc[3]]
		if out, ok := cutBody(js, "function "+name, loc[3]); ok {
			return name, out, nil
		}
		return "", "", errs.New(errs.CodeDecipherFunctionNotFound, "decipher function not found", name)
	}
	return "", "", errs.New(errs.CodeDecipherFunctionNotFound, "decipher function not found", "entry pattern")
}

// cutBody joins prefix with js[from:end], where end closes the first block
// at or after from.
func cutBody(js, prefix string, from int) (string, bool) {
	end := textscan.BraceEnd(js, from)
	if end < 0 {
		return "", false
	}
	return prefix + js[from:end] + ";", true
}

// dependencies lists the definitions body needs that assembled does not
// contain yet, objects before functions, each in order of first call.
func dependencies(js, body, assembled string) []string {
	params := paramNames(body)
	var out []string
	seen := make(map[string]bool)

	for _, m := range objectCallRe.FindAllStringSubmatch(body, -1) {
		obj := m[2]
		if params[obj] || seen["o:"+obj] || strings.Contains(assembled, "var "+obj+"={") {
			continue
		}
		seen["o:"+obj] = true
		if def, ok := objectDefinition(js, obj); ok {
			out = append(out, def)
		}
	}
	for _, m := range bareCallRe.FindAllStringSubmatch(body, -1) {
		fn := m[2]
		if params[fn] || seen["f:"+fn] || strings.Contains(assembled, "function "+fn+"(") || strings.Contains(assembled, "var "+fn+"=function(") {
			continue
		}
		seen["f:"+fn] = true
		if def, ok := functionDefinition(js, fn); ok {
			out = append(out, def)
		}
	}
	return out
}

// objectDefinition finds "var X={...}" or an assignment "X={...}" following
// ';' or ',' and returns it as "var X={...};".
func objectDefinition(js, obj string) (string, bool) {
	for _, lead := range []string{"var ", ";", ","} {
		needle := lead + obj + "={"
		i := strings.Index(js, needle)
		if i < 0 {
			continue
		}
		block, ok := textscan.Block(js, i+len(needle)-1)
		if !ok {
			continue
		}
		return "var " + obj + "=" + block + ";", true
	}
	return "", false
}

// functionDefinition finds "function X(...){...}" or "X=function(...){...}".
func functionDefinition(js, fn string) (string, bool) {
	needle := "function " + fn + "("
	if i := strings.Index(js, needle); i >= 0 {
		if end := textscan.BraceEnd(js, i); end > 0 {
			return js[i:end] + ";", true
		}
	}
	assignRe := regexp.MustCompile(`(?:^|[^a-zA-Z0-9$_.])` + regexp.QuoteMeta(fn) + `=function\(`)
	if loc := assignRe.FindStringIndex(js); loc != nil {
		start := loc[1] - len(fn+"=function(")
		if end := textscan.BraceEnd(js, start); end > 0 {
			return "var " + js[start:end] + ";", true
		}
	}
	return "", false
}

// paramNames collects the parameter names of every function literal in body.
func paramNames(body string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range paramListRe.FindAllStringSubmatch(body, -1) {
		for _, p := range strings.Split(m[1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				out[p] = true
			}
		}
	}
	return out
}

package namespace

import "regexp"

// declarationPattern matches a namespace declaration anchored at line start:
// "namespace Vendor\Package;". One declaration is expected per file; only the
// first is ever rewritten.
var declarationPattern = regexp.MustCompile(`(?m)^namespace[ \t]+[A-Za-z_][A-Za-z0-9_]*(?:\\[A-Za-z_][A-Za-z0-9_]*)*[ \t]*;`)

// RewriteDeclaration replaces the first namespace declaration in content with
// ns and reports whether a replacement happened. Content without a
// declaration is returned unchanged.
func RewriteDeclaration(content []byte, ns string) ([]byte, bool) {
	loc := declarationPattern.FindIndex(content)
	if loc == nil {
		return content, false
	}

	replacement := "namespace " + ns + ";"
	out := make([]byte, 0, len(content)-(loc[1]-loc[0])+len(replacement))
	out = append(out, content[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, content[loc[1]:]...)
	return out, true
}

package derive

import (
	"fmt"
	"strings"

	"github.com/typederive/typederive/internal/openapi"
	"golang.org/x/text/unicode/norm"
)

// allocateName picks a registry-unique name for a newly encountered nominal
// type: the sanitized declared name if free, otherwise the first free
// _1, _2, … suffix.
func allocateName(declared string, reg *openapi.Registry) string {
	base := sanitizeName(declared)
	if !reg.Has(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !reg.Has(candidate) {
			return candidate
		}
	}
}

// sanitizeName normalizes a declared name to the component-key alphabet
// (A–Z a–z 0–9 . _ -). Names are NFC-normalized first so that visually equal
// declared names map to equal keys regardless of source encoding.
func sanitizeName(name string) string {
	name = norm.NFC.String(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "Schema"
	}
	return b.String()
}

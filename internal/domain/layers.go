package domain

import (
	"fmt"
	"strings"
)

// VisibleBands maps every band name of p to whether it is shown when the
// viewer selects drainage d. Only bands of the selected drainage are shown.
func VisibleBands(p *Product, d Drainage) map[string]bool {
	vis := make(map[string]bool, len(p.Bands))
	for _, b := range p.Bands {
		vis[b.Name] = b.Drainage == d
	}
	return vis
}

// LayerTitle is the human-readable layer label for a band,
// e.g. "Curve Number (Poor, ARC I, Drained)".
func LayerTitle(c Condition, arc ARC, d Drainage) string {
	return fmt.Sprintf("Curve Number (%s, ARC %s, %s)",
		capitalize(c.String()), strings.ToUpper(arc.String()), capitalize(d.String()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package domain

import (
	"time"

	"github.com/smallbiznis/geotoll/internal/geo"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
)

// SelectRule returns the first rule in the supplied order that is
// applicable at the instant and whose zone contains the point, or nil
// when none matches. The caller defines the priority order (ascending
// rule ID in this engine); first match wins, order matters. This is
// deliberately not a "most specific match" heuristic: overlap
// resolution is by position, documented for operators.
//
// Rules without a loaded zone, and zones without any geofence
// descriptor, simply never match by location.
func SelectRule(rules []*ruledomain.Rule, point geo.Point, instant time.Time, loc *time.Location) *ruledomain.Rule {
	for _, rule := range rules {
		if rule == nil || rule.Zone == nil {
			continue
		}
		if !rule.IsApplicableAt(instant, loc) {
			continue
		}
		if rule.Zone.Contains(point) {
			return rule
		}
	}
	return nil
}

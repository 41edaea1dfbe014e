package domain

import (
	"context"

	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
)

type Service interface {
	// Resolve runs the full billing check for one observation:
	// select the applicable rule for (location, instant), then apply
	// the metering state machine under the user's transaction
	// boundary.
	Resolve(ctx context.Context, req ResolveRequest) (ResolveResponse, error)

	// LookupRule returns the rule that would apply at the location
	// and instant, without touching any user state. Nil means no
	// rule matches.
	LookupRule(ctx context.Context, req LookupRuleRequest) (*ruledomain.Rule, error)
}

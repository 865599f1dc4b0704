package entitlement

import "time"

// PlanType identifies the subscription tier a viewer is on.
type PlanType string

const (
	PlanStandard  PlanType = "standard"
	PlanGrowth    PlanType = "growth"
	PlanCommunity PlanType = "community"
	PlanNone      PlanType = "none"
)

// Duration is the billing commitment length in months. Zero means none.
type Duration int

const (
	DurationNone      Duration = 0
	DurationMonthly   Duration = 1
	DurationQuarterly Duration = 3
)

// Entitlement is the normalized representation of what a viewer may access,
// derived from billing state. It is rebuilt on every resolve; the only
// client-side persistence is a short-lived cache.
type Entitlement struct {
	PlanType          PlanType   `json:"planType"`
	Duration          Duration   `json:"duration"`
	Active            bool       `json:"isSubscribed"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
	CancelAt          *time.Time `json:"cancelAt"`
	RenewalDate       *time.Time `json:"renewalDate"`
}

// Inactive returns the canonical entitlement of a viewer with no active
// subscription. Anonymous viewers and failed lookups both normalize to it.
func Inactive() Entitlement {
	return Entitlement{
		PlanType: PlanNone,
		Duration: DurationNone,
		Active:   false,
	}
}

// EffectivePlan returns the plan the gating layer must honor. An inactive
// entitlement always presents as PlanNone: a stale plan label must not grant
// access after expiry.
func (e Entitlement) EffectivePlan() PlanType {
	if !e.Active {
		return PlanNone
	}
	return e.PlanType
}

// HasPaidAccess reports whether the viewer may see member-gated content.
func (e Entitlement) HasPaidAccess() bool {
	return e.EffectivePlan() != PlanNone
}

package fleet

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// suggestion policy for unknown maintenance labels
const suggestMinRatio = .7

// NewSession returns an empty log book.
func NewSession() State {
	return State{History: []Event{}}
}

// RecordEvent appends e to the history. The odometer never rolls back on a lower reading.
func RecordEvent(state State, e Event) State {
	history := make([]Event, len(state.History), len(state.History)+1)
	copy(history, state.History)

	current := state.CurrentOdometer
	if e.Odometer > current {
		current = e.Odometer
	}
	return State{History: append(history, e), CurrentOdometer: current}
}

// LastService returns the odometer of the latest maintenance of component, 0 if it was never serviced.
func LastService(state State, component string) int {
	for i := len(state.History) - 1; i >= 0; i-- {
		e := state.History[i]
		if e.Category == CategoryMaintenance && e.Component == component {
			return e.Odometer
		}
	}
	return 0
}

// Remaining returns the distance left before the next service; negative when overdue.
func Remaining(rule ServiceRule, current, lastService int) int {
	return rule.Interval - (current - lastService)
}

// PercentLife returns the remaining life of a component, clamped to [0, 100].
func PercentLife(rule ServiceRule, current, lastService int) float64 {
	since := float64(current - lastService)
	pct := 100 - since/float64(rule.Interval)*100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func StateOf(remaining int) ComponentState {
	if remaining <= DueThreshold {
		return StateDue
	}
	return StateOK
}

// FuelEfficiency computes km per litre from the last two refuels.
// ok is false when there are fewer than two refuels, the distance is not positive or the volume is zero.
func FuelEfficiency(state State) (kmPerLitre float64, ok bool) {
	var last, prev *Event
	for i := len(state.History) - 1; i >= 0 && prev == nil; i-- {
		if state.History[i].Category != CategoryRefuel {
			continue
		}
		if last == nil {
			last = &state.History[i]
		} else {
			prev = &state.History[i]
		}
	}
	if prev == nil {
		return 0, false
	}
	distance := last.Odometer - prev.Odometer
	if distance <= 0 || last.Volume <= 0 {
		return 0, false
	}
	return float64(distance) / last.Volume, true
}

// Planner applies a master plan to vehicle log books.
type Planner struct {
	plan MasterPlan
}

// NewPlanner returns a Planner over plan.
// A component listed twice keeps its first rule; rules without a positive interval are ignored.
func NewPlanner(plan MasterPlan) *Planner {
	seen := make(map[string]bool, len(plan))
	rules := make(MasterPlan, 0, len(plan))
	for _, rule := range plan {
		if seen[rule.Component] || rule.Interval <= 0 {
			continue
		}
		seen[rule.Component] = true
		rules = append(rules, rule)
	}
	return &Planner{plan: rules}
}

// Plan returns a copy of the planner's rules.
func (p *Planner) Plan() MasterPlan {
	plan := make(MasterPlan, len(p.plan))
	copy(plan, p.plan)
	return plan
}

func (p *Planner) Rule(component string) (ServiceRule, bool) {
	for _, rule := range p.plan {
		if rule.Component == component {
			return rule, true
		}
	}
	return ServiceRule{}, false
}

// PercentLifeRemaining returns the remaining life of component; false if it is not in the plan.
func (p *Planner) PercentLifeRemaining(state State, component string) (float64, bool) {
	rule, ok := p.Rule(component)
	if !ok {
		return 0, false
	}
	return PercentLife(rule, state.CurrentOdometer, LastService(state, component)), true
}

// StatusReport returns the status of every plan component, in plan order.
// Events about components outside the plan stay in the history but are not reported.
func (p *Planner) StatusReport(state State) []ComponentStatus {
	report := make([]ComponentStatus, 0, len(p.plan))
	for _, rule := range p.plan {
		last := LastService(state, rule.Component)
		remaining := Remaining(rule, state.CurrentOdometer, last)
		report = append(report, ComponentStatus{
			Component:   rule.Component,
			Interval:    rule.Interval,
			LastService: last,
			Remaining:   remaining,
			PercentLife: PercentLife(rule, state.CurrentOdometer, last),
			State:       StateOf(remaining),
		})
	}
	return report
}

// Suggest returns the plan component closest to an unknown label, or "" when nothing is close enough.
func (p *Planner) Suggest(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	if _, ok := p.Rule(label); ok {
		return ""
	}
	label = strings.ToLower(label)

	var best string
	var bestRatio float64
	for _, rule := range p.plan {
		name := strings.ToLower(rule.Component)
		if name == label {
			// only the case differs
			return rule.Component
		}
		ratio := difflib.NewMatcher(strings.Split(label, ""), strings.Split(name, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = rule.Component, ratio
		}
	}
	if bestRatio >= suggestMinRatio {
		return best
	}
	return ""
}

// Costs totals the cost of the history per category, in Categories order.
func Costs(state State) []CategoryCost {
	totals := make(map[Category]*CategoryCost, len(Categories))
	costs := make([]CategoryCost, len(Categories))
	for i, c := range Categories {
		costs[i].Category = c
		totals[c] = &costs[i]
	}
	for _, e := range state.History {
		if cc, ok := totals[e.Category]; ok {
			cc.Total += e.Cost
			cc.Count++
		}
	}
	return costs
}

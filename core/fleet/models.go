package fleet

import "time"

type Category string

const (
	CategoryMaintenance Category = "Maintenance"
	CategoryRefuel      Category = "Refuel"
	CategoryCosmetic    Category = "Cosmetic"
	CategoryTax         Category = "Tax/Insurance"
	CategoryOther       Category = "Other"
)

var Categories = []Category{CategoryMaintenance, CategoryRefuel, CategoryCosmetic, CategoryTax, CategoryOther}

// Event is one entry of a vehicle's log book. Odometer is in km, Volume in litres (Refuel only).
type Event struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"` // UTC
	Category  Category  `json:"category"`
	Component string    `json:"component"`
	Odometer  int       `json:"odometer"`
	Cost      float64   `json:"cost"`
	Volume    float64   `json:"volume"`
}

// State is the persisted log book of a vehicle.
// History is in insertion order, which callers keep in non-decreasing odometer order.
type State struct {
	History         []Event `json:"history"`
	CurrentOdometer int     `json:"current_odometer"`
}

// ServiceRule gives the distance (km) between two services of a component.
type ServiceRule struct {
	Component string `json:"component" yaml:"component"`
	Interval  int    `json:"interval" yaml:"interval"`
}

// MasterPlan is the ordered table of service rules.
type MasterPlan []ServiceRule

var masterPlan = MasterPlan{
	{Component: "Engine oil", Interval: 10000},
	{Component: "Oil filter", Interval: 10000},
	{Component: "Air filter", Interval: 20000},
	{Component: "Fuel filter", Interval: 40000},
	{Component: "Brake pads", Interval: 30000},
	{Component: "Tires", Interval: 50000},
	{Component: "Timing belt", Interval: 100000},
	{Component: "Coolant", Interval: 40000},
	{Component: "Spark plugs", Interval: 30000},
	{Component: "Battery", Interval: 60000},
}

// DefaultPlan returns a copy of the fleet's master plan.
func DefaultPlan() MasterPlan {
	plan := make(MasterPlan, len(masterPlan))
	copy(plan, masterPlan)
	return plan
}

type ComponentState string

const (
	StateOK  ComponentState = "OK"
	StateDue ComponentState = "DUE"
)

// DueThreshold is the remaining distance (km) at and under which a component is due.
const DueThreshold = 1000

type ComponentStatus struct {
	Component   string         `json:"component"`
	Interval    int            `json:"interval"`
	LastService int            `json:"last_service"`
	Remaining   int            `json:"remaining"` // negative when overdue
	PercentLife float64        `json:"percent_life"`
	State       ComponentState `json:"state"`
}

type Report struct {
	Vehicle         string            `json:"vehicle"`
	CurrentOdometer int               `json:"current_odometer"`
	Components      []ComponentStatus `json:"components"`
	FuelEfficiency  *float64          `json:"fuel_efficiency"` // km per litre; null when it cannot be computed
}

type CategoryCost struct {
	Category Category `json:"category"`
	Total    float64  `json:"total"`
	Count    int      `json:"count"`
}

// NewEvent contains the form data of a new log book entry.
type NewEvent struct {
	Date      time.Time `json:"date"`
	Category  Category  `json:"category" validate:"required,oneof=Maintenance Refuel Cosmetic Tax/Insurance Other"`
	Component string    `json:"component"`
	Odometer  *int      `json:"odometer" validate:"required,gte=0"`
	Cost      float64   `json:"cost" validate:"gte=0"`
	Volume    float64   `json:"volume" validate:"gte=0"`
}

// Recorded is the outcome of recording a NewEvent.
type Recorded struct {
	Event      Event  `json:"event"`
	Report     Report `json:"report"`
	Suggestion string `json:"suggestion,omitempty"` // likely master plan name for an unknown component
}

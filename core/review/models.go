package review

import "fmt"

// Line item fields known to the queue and to the inventory decisions.
const (
	StatusField       = "status"
	DescriptionField  = "description"
	RequestedQtyField = "requested_qty"
	SuggestedQtyField = "suggested_qty"
	PurchaseQtyField  = "purchase_qty"
	BalanceField      = "balance"
)

// Statuses
const (
	StatusPending  = "Pending"
	StatusAwaiting = "Awaiting"
	StatusTotal    = "Total" // full purchase
	StatusNone     = "None"  // no purchase
)

// LineItem is one row of a review backlog: arbitrary named fields plus a status.
type LineItem map[string]interface{}

func (item LineItem) Status() string {
	status, _ := item[StatusField].(string)
	return status
}

func (item LineItem) clone() LineItem {
	c := make(LineItem, len(item))
	for k, v := range item {
		c[k] = v
	}
	return c
}

// State is the persisted document of a queue.
// Cursor points at the next undecided item; Cursor == len(Items) means everything was reviewed.
type State struct {
	Items  []LineItem `json:"items"`
	Cursor int        `json:"cursor"`
}

func (s State) Done() bool { return s.Cursor >= len(s.Items) }

// normalize repairs a loaded document so that 0 <= Cursor <= len(Items).
func (s *State) normalize() {
	if s.Items == nil {
		s.Items = []LineItem{}
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	} else if s.Cursor > len(s.Items) {
		s.Cursor = len(s.Items)
	}
}

// Progress describes where a reviewer stands in a queue.
type Progress struct {
	Item   LineItem `json:"item"`
	Cursor int      `json:"cursor"`
	Total  int      `json:"total"`
	Done   bool     `json:"done"`
}

type FieldType int

const (
	String FieldType = iota
	Number
	Bool
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// DefaultFor returns the value given to a missing column of type t.
func DefaultFor(t FieldType) interface{} {
	switch t {
	case Number:
		return float64(0)
	case Bool:
		return false
	default:
		return StatusPending
	}
}

// FieldSpec declares the type of a column and, optionally, the default overriding DefaultFor.
type FieldSpec struct {
	Type    FieldType
	Default interface{}
}

func (fs FieldSpec) defaultValue() interface{} {
	if fs.Default != nil {
		return fs.Default
	}
	return DefaultFor(fs.Type)
}

// Schema maps the required columns of a queue to their spec.
type Schema map[string]FieldSpec

// Decision is the outcome a reviewer records on the current item.
type Decision struct {
	Status string                 `json:"status" validate:"required,notblank"`
	Fields map[string]interface{} `json:"fields"`
}

// FullPurchase buys the suggested quantity and records the counted balance.
func FullPurchase(suggested, balance float64) Decision {
	return Decision{
		Status: StatusTotal,
		Fields: map[string]interface{}{PurchaseQtyField: suggested, BalanceField: balance},
	}
}

// NoPurchase buys nothing and records the counted balance.
func NoPurchase(balance float64) Decision {
	return Decision{
		Status: StatusNone,
		Fields: map[string]interface{}{PurchaseQtyField: float64(0), BalanceField: balance},
	}
}

// Queue declares a named review queue.
type Queue struct {
	Name   string
	Schema Schema
}

var (
	// InventoryQueue holds the stock intake backlog reviewed line by line for purchasing.
	InventoryQueue = Queue{
		Name: "inventory",
		Schema: Schema{
			DescriptionField:  {Type: String, Default: ""},
			RequestedQtyField: {Type: Number},
			SuggestedQtyField: {Type: Number},
			PurchaseQtyField:  {Type: Number},
			BalanceField:      {Type: Number},
			StatusField:       {Type: String},
		},
	}

	// OperationsQueue holds operations report lines awaiting sign-off.
	OperationsQueue = Queue{
		Name: "operations",
		Schema: Schema{
			DescriptionField: {Type: String, Default: ""},
			"site":           {Type: String, Default: ""},
			"amount":         {Type: Number},
			"approved":       {Type: Bool},
			"comment":        {Type: String, Default: StatusAwaiting},
			StatusField:      {Type: String},
		},
	}
)

// DefaultQueues returns the queues served by the dashboards.
func DefaultQueues() []Queue {
	return []Queue{InventoryQueue, OperationsQueue}
}

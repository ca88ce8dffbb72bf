package models

// PizzaOrder is one record of pizzaorders.json. OrderDate is kept as the
// stored string because older files use more than one layout.
type PizzaOrder struct {
	ID        int     `json:"id"`
	Type      string  `json:"type"`
	Crust     string  `json:"crust"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	PricePer  float64 `json:"price_per"`
	OrderDate string  `json:"order_date"`
}

func (o PizzaOrder) Total() float64 {
	return float64(o.Quantity) * o.PricePer
}

type OrderAction string

const (
	OrderActionCreated OrderAction = "created"
	OrderActionUpdated OrderAction = "updated"
	OrderActionDeleted OrderAction = "deleted"
)

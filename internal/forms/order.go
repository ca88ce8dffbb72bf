package forms

import (
	"errors"
	"fmt"
	"time"

	"pizza-orders/internal/models"
)

const (
	DateLayout       = "2006-01-02"
	legacyDateLayout = "2006/01/02"
)

var (
	ErrInvalidDate  = errors.New("invalid order date")
	ErrMissingPrice = errors.New("missing price per pizza")
)

// ParseOrderDate accepts the canonical layout and falls back to the slash
// layout found in older order files.
func ParseOrderDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatOrderDate(t time.Time) string {
	return t.Format(DateLayout)
}

type OrderForm struct {
	ID        int      `schema:"id"`
	Type      string   `schema:"type" validate:"required"`
	Crust     string   `schema:"crust" validate:"required"`
	Size      string   `schema:"size" validate:"required"`
	Quantity  int      `schema:"quantity" validate:"required,gt=0"`
	PricePer  *float64 `schema:"price_per" validate:"required,finite,gte=0"`
	OrderDate string   `schema:"order_date" validate:"required,orderdate"`
}

// CheckCatalog adds an error for every option the catalog does not list.
func (f OrderForm) CheckCatalog(c models.Catalog, errs FieldErrors) {
	if f.Type != "" && !c.HasType(f.Type) {
		errs.Add("type", messages["oneof"])
	}
	if f.Crust != "" && !c.HasCrust(f.Crust) {
		errs.Add("crust", messages["oneof"])
	}
	if f.Size != "" && !c.HasSize(f.Size) {
		errs.Add("size", messages["oneof"])
	}
}

// ToOrder maps a validated form to an order record with the date written in
// the canonical layout.
func (f OrderForm) ToOrder() (models.PizzaOrder, error) {
	date, err := ParseOrderDate(f.OrderDate)
	if err != nil {
		return models.PizzaOrder{}, err
	}
	if f.PricePer == nil {
		return models.PizzaOrder{}, ErrMissingPrice
	}
	return models.PizzaOrder{
		ID:        f.ID,
		Type:      f.Type,
		Crust:     f.Crust,
		Size:      f.Size,
		Quantity:  f.Quantity,
		PricePer:  *f.PricePer,
		OrderDate: FormatOrderDate(date),
	}, nil
}

// PrefillOrderForm copies a stored order into a form for display. Dates in
// either layout are shown in the canonical one; unparseable dates are shown
// as stored.
func PrefillOrderForm(o models.PizzaOrder) OrderForm {
	date := o.OrderDate
	if t, err := ParseOrderDate(o.OrderDate); err == nil {
		date = FormatOrderDate(t)
	}
	price := o.PricePer
	return OrderForm{
		ID:        o.ID,
		Type:      o.Type,
		Crust:     o.Crust,
		Size:      o.Size,
		Quantity:  o.Quantity,
		PricePer:  &price,
		OrderDate: date,
	}
}

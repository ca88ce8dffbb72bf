package models

import "slices"

// Catalog holds the valid option lists from init.json.
type Catalog struct {
	Type  []string `json:"type"`
	Crust []string `json:"crust"`
	Size  []string `json:"size"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Type:  []string{"Margherita", "Pepperoni", "Hawaiian", "Vegetarian", "BBQ Chicken"},
		Crust: []string{"Thin", "Regular", "Thick", "Stuffed"},
		Size:  []string{"Small", "Medium", "Large", "Extra Large"},
	}
}

func (c Catalog) HasType(v string) bool  { return slices.Contains(c.Type, v) }
func (c Catalog) HasCrust(v string) bool { return slices.Contains(c.Crust, v) }
func (c Catalog) HasSize(v string) bool  { return slices.Contains(c.Size, v) }

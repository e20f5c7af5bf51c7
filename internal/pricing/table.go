package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Rule prices one method×size cell of the table. Flat rules charge Price
// regardless of order quantity. Tiered rules charge Base for up to BaseQty
// units and PerPiece for every unit beyond that.
type Rule struct {
	Flat     bool    `json:"flat"`
	Price    float64 `json:"price,omitempty"`
	Base     float64 `json:"base,omitempty"`
	BaseQty  int     `json:"baseQty,omitempty"`
	PerPiece float64 `json:"perPiece,omitempty"`
}

// Table maps every print method and size bucket to its pricing rule.
// It is static configuration: Validate enforces totality over the full
// Method × Size cross product before an Engine will accept it.
type Table struct {
	Currency string                   `json:"currency"`
	Rules    map[Method]map[Size]Rule `json:"rules"`
}

// DefaultTable returns the built-in price table, in whole KRW.
func DefaultTable() *Table {
	return &Table{
		Currency: "KRW",
		Rules: map[Method]map[Size]Rule{
			MethodDTF: {
				Size10x10: {Flat: true, Price: 3000},
				SizeA4:    {Flat: true, Price: 5000},
				SizeA3:    {Flat: true, Price: 8000},
			},
			MethodDTG: {
				Size10x10: {Flat: true, Price: 4000},
				SizeA4:    {Flat: true, Price: 6000},
				SizeA3:    {Flat: true, Price: 9000},
			},
			MethodScreenPrinting: {
				Size10x10: {Base: 50000, BaseQty: 100, PerPiece: 500},
				SizeA4:    {Base: 60000, BaseQty: 100, PerPiece: 600},
				SizeA3:    {Base: 80000, BaseQty: 100, PerPiece: 800},
			},
			MethodEmbroidery: {
				Size10x10: {Base: 60000, BaseQty: 100, PerPiece: 600},
				SizeA4:    {Base: 70000, BaseQty: 100, PerPiece: 800},
				SizeA3:    {Base: 90000, BaseQty: 100, PerPiece: 1000},
			},
			MethodApplique: {
				Size10x10: {Base: 80000, BaseQty: 100, PerPiece: 800},
				SizeA4:    {Base: 90000, BaseQty: 100, PerPiece: 1000},
				SizeA3:    {Base: 110000, BaseQty: 100, PerPiece: 1200},
			},
		},
	}
}

// LoadTable reads and validates a price table from a JSON file.
func LoadTable(path string) (*Table, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse price table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid price table: %w", err)
	}

	return &table, nil
}

// Validate checks the table covers every method×size combination and that
// each rule's shape matches its method (flat for transfer methods, tiered
// for bulk methods). A gap here is a configuration error and must abort
// startup; computation never re-checks.
func (t *Table) Validate() error {
	if t.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	for _, method := range Methods() {
		sizes, ok := t.Rules[method]
		if !ok {
			return fmt.Errorf("method %q missing from price table", method)
		}
		for _, size := range Sizes() {
			rule, ok := sizes[size]
			if !ok {
				return fmt.Errorf("method %q missing size %q", method, size)
			}
			if method.Tiered() {
				if rule.Flat {
					return fmt.Errorf("method %q size %q: tiered method has flat rule", method, size)
				}
				if rule.BaseQty <= 0 {
					return fmt.Errorf("method %q size %q: base quantity must be positive", method, size)
				}
				if rule.Base < 0 || rule.PerPiece < 0 {
					return fmt.Errorf("method %q size %q: negative tiered price", method, size)
				}
			} else {
				if !rule.Flat {
					return fmt.Errorf("method %q size %q: flat method has tiered rule", method, size)
				}
				if rule.Price < 0 {
					return fmt.Errorf("method %q size %q: negative price", method, size)
				}
			}
		}
	}
	return nil
}

// Price returns the charge for one object of the given method and size at
// the given order quantity. Results never go below zero.
func (t *Table) Price(method Method, size Size, quantity int) float64 {
	rule := t.Rules[method][size]

	var price float64
	if method.Tiered() {
		price = rule.Base
		if quantity > rule.BaseQty {
			price += float64(quantity-rule.BaseQty) * rule.PerPiece
		}
	} else {
		price = rule.Price
	}

	if price < 0 {
		return 0
	}
	return price
}

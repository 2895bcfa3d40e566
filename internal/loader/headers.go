package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultHeaderMap maps the sheet's localized header labels to canonical
// field names.
var DefaultHeaderMap = map[string]string{
	"Номер заказа":       "order_id",
	"Дата заказа":        "order_date",
	"ФИО Клиента":        "client_name",
	"Email клиента":      "client_email",
	"Телефон клиента":    "client_phone",
	"Название модели":    "model_name",
	"Категория обуви":    "category",
	"Производитель":      "brand",
	"Размер обуви":       "size",
	"Цвет":               "color",
	"Цена за пару":       "price",
	"Кол-во пар":         "quantity",
	"ФИО продавца":       "seller_name",
	"Должность продавца": "seller_position",
	"Склад отгрузки":     "warehouse_name",
	"Адрес склада":       "warehouse_address",
	"Вместимость склада": "warehouse_capacity",
	"Количество полок":   "warehouse_shelves",
}

// RequiredColumns must be present after renaming; they identify the order and
// every entity it references.
var RequiredColumns = []string{
	"order_id",
	"client_name", "client_email", "client_phone",
	"model_name", "category", "brand", "size", "color",
	"seller_name", "seller_position",
	"warehouse_name", "warehouse_address",
}

// labelCleaner composes to NFC and turns format/space controls such as NBSP
// into plain spaces before CleanLabel collapses them.
var labelCleaner = transform.Chain(
	norm.NFC,
	runes.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u2007', '\u202f', '\ufeff':
			return ' '
		}
		return r
	}),
)

// CleanLabel canonicalizes a header label for matching: NFC, no BOM or
// non-breaking spaces, trimmed, single-spaced and case-folded. "ФИО  клиента "
// and "ФИО Клиента" compare equal.
func CleanLabel(s string) string {
	out, _, err := transform.String(labelCleaner, s)
	if err != nil {
		out = s
	}
	out = strings.Join(strings.Fields(out), " ")
	return cases.Fold().String(out)
}

// HeaderMapping resolves source header labels to canonical names.
type HeaderMapping struct {
	byLabel map[string]string
}

// NewHeaderMapping indexes m by cleaned label.
func NewHeaderMapping(m map[string]string) HeaderMapping {
	idx := make(map[string]string, len(m))
	for label, name := range m {
		idx[CleanLabel(label)] = name
	}
	return HeaderMapping{byLabel: idx}
}

// Resolve returns the canonical name for label. Labels the mapping does not
// know come back unchanged with ok=false.
func (h HeaderMapping) Resolve(label string) (string, bool) {
	if name, ok := h.byLabel[CleanLabel(label)]; ok {
		return name, true
	}
	return label, false
}

// Renames builds the old->new rename table for the given columns.
func (h HeaderMapping) Renames(columns []string) map[string]string {
	out := make(map[string]string, len(columns))
	for _, c := range columns {
		if name, ok := h.Resolve(c); ok {
			out[c] = name
		}
	}
	return out
}

// LoadHeaderMap reads a JSON object of label -> canonical name from path and
// layers it over DefaultHeaderMap. An empty path returns the defaults.
func LoadHeaderMap(path string) (map[string]string, error) {
	out := make(map[string]string, len(DefaultHeaderMap))
	for k, v := range DefaultHeaderMap {
		out[k] = v
	}
	if strings.TrimSpace(path) == "" {
		return out, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read header map: %w", err)
	}
	var extra map[string]string
	if err := json.Unmarshal(b, &extra); err != nil {
		return nil, fmt.Errorf("loader: decode header map %s: %w", path, err)
	}
	for k, v := range extra {
		out[k] = v
	}
	return out, nil
}

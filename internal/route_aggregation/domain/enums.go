package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryBlue Category = "blue"
	CategoryRed  Category = "red"
)

// Categories lists every category in rendering order.
var Categories = []Category{CategoryBlue, CategoryRed}

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryBlue:
		return CategoryBlue, nil
	case CategoryRed:
		return CategoryRed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type PortAlignment string

const (
	PortTop    PortAlignment = "top"
	PortLeft   PortAlignment = "left"
	PortBottom PortAlignment = "bottom"
	PortRight  PortAlignment = "right"
)

// Port returns the router port a category's links attach to.
func (c Category) Port() PortAlignment {
	if c == CategoryRed {
		return PortTop
	}
	return PortLeft
}

func (c Category) Color() string {
	return string(c)
}

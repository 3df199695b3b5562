package model

import (
	"fmt"
	"strings"
)

// Product is the kind of artifact a target produces.
type Product string

const (
	ProductApp             Product = "app"
	ProductStaticLibrary   Product = "static_library"
	ProductDynamicLibrary  Product = "dynamic_library"
	ProductFramework       Product = "framework"
	ProductStaticFramework Product = "static_framework"
	ProductUnitTests       Product = "unit_tests"
	ProductUITests         Product = "ui_tests"
	ProductBundle          Product = "bundle"
	ProductAppExtension    Product = "app_extension"
	ProductWatch2App       Product = "watch2_app"
	ProductWatch2Extension Product = "watch2_extension"
)

var productCaptions = map[Product]string{
	ProductApp:             "application",
	ProductStaticLibrary:   "static library",
	ProductDynamicLibrary:  "dynamic library",
	ProductFramework:       "dynamic framework",
	ProductStaticFramework: "static framework",
	ProductUnitTests:       "unit tests",
	ProductUITests:         "ui tests",
	ProductBundle:          "bundle",
	ProductAppExtension:    "app extension",
	ProductWatch2App:       "watch 2 application",
	ProductWatch2Extension: "watch 2 extension",
}

// ParseProduct converts a manifest value into a Product.
func ParseProduct(raw string) (Product, error) {
	p := Product(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := productCaptions[p]; !ok {
		return "", fmt.Errorf("unknown product %q", raw)
	}
	return p, nil
}

// Caption returns the human-readable product name.
func (p Product) Caption() string {
	if c, ok := productCaptions[p]; ok {
		return c
	}
	return string(p)
}

// IsStatic reports whether the product is linked statically into its consumer.
func (p Product) IsStatic() bool {
	return p == ProductStaticLibrary || p == ProductStaticFramework
}

// IsDynamic reports whether the product is a dynamically linked library or framework.
func (p Product) IsDynamic() bool {
	return p == ProductDynamicLibrary || p == ProductFramework
}

// IsLinkable reports whether consumers link against the product.
func (p Product) IsLinkable() bool {
	return p.IsStatic() || p.IsDynamic()
}

// IsTests reports whether the product is a test bundle.
func (p Product) IsTests() bool {
	return p == ProductUnitTests || p == ProductUITests
}

// CanHostStaticProducts reports whether static dependencies are flattened
// into this product when it is linked.
func (p Product) CanHostStaticProducts() bool {
	switch p {
	case ProductApp, ProductDynamicLibrary, ProductFramework, ProductUnitTests,
		ProductUITests, ProductAppExtension, ProductWatch2Extension:
		return true
	default:
		return false
	}
}

package enums

import "fmt"

// ProductCategory identifies the appliance family of a rentable product.
type ProductCategory string

const (
	ProductCategoryAC             ProductCategory = "AC"
	ProductCategoryRefrigerator   ProductCategory = "Refrigerator"
	ProductCategoryWashingMachine ProductCategory = "WashingMachine"
)

var validProductCategories = []ProductCategory{
	ProductCategoryAC,
	ProductCategoryRefrigerator,
	ProductCategoryWashingMachine,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductStatus tracks whether an appliance can be rented out.
type ProductStatus string

const (
	ProductStatusAvailable        ProductStatus = "Available"
	ProductStatusRentedOut        ProductStatus = "RentedOut"
	ProductStatusUnderMaintenance ProductStatus = "UnderMaintenance"
)

var validProductStatuses = []ProductStatus{
	ProductStatusAvailable,
	ProductStatusRentedOut,
	ProductStatusUnderMaintenance,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// Package model defines the core data structures for the autoreader.
package model

import "strings"

// Category is a canonical tariff category a bill label can be mapped onto.
type Category string

// Unclassified marks a label no rule in the selected group matched.
const Unclassified Category = ""

// Energy consumption categories.
const (
	SupplyCharge    Category = "supply_charge"
	Peak            Category = "peak"
	OffPeak         Category = "off_peak"
	Shoulder        Category = "shoulder"
	ControlledLoad  Category = "controlled_load"
	MeteringCharge  Category = "metering_charge"
	NonSummerDemand Category = "nonsummer_demand"
	SummerDemand    Category = "summer_demand"
	SolarFIT        Category = "solar_fit"
	UnknownDemand   Category = "unknown_demand"
	Other           Category = "other"
)

// Unbundled market charge categories.
const (
	LRET              Category = "LRET"
	ESC               Category = "ESC"
	SRES              Category = "SRES"
	SREC              Category = "SREC"
	VEET              Category = "VEET"
	AEMOAncillary     Category = "aemo_ancillary"
	AEMOPoolFees      Category = "aemo_pool_fees"
	ParticipantCharge Category = "participant_charge"
)

// Auxiliary rule sets. They can be queried directly but belong to no tariff group.
const (
	Unbundled           Category = "unbundled"
	Environment         Category = "environment"
	Market              Category = "market"
	OtherCharges        Category = "other_charges"
	Discount            Category = "discount"
	DiscountFromLabel   Category = "discount_from_label"
	TotalBeforeDiscount Category = "total_before_discount"
)

var displayNames = map[Category]string{
	AEMOAncillary:     "AEMO Ancillary",
	AEMOPoolFees:      "AEMO Pool Fees",
	ParticipantCharge: "Participant Charge",
}

// DisplayName returns the label used on reports for the category.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	if c == Unclassified {
		return "unclassified"
	}
	return string(c)
}

// Key returns the case-folded lookup key for the category.
func (c Category) Key() string {
	return strings.ToLower(string(c))
}

// IsClassified reports whether the category is a real match.
func (c Category) IsClassified() bool {
	return c != Unclassified
}

// TariffGroup identifies an ordered set of categories used for one classification pass.
type TariffGroup string

// Built-in tariff groups.
const (
	EnergyConsumption TariffGroup = "energy_consumption"
	MarketTariff      TariffGroup = "market_tariff"
)

// ListFields are categories a bill can carry more than once (stepped or seasonal rates).
var ListFields = []Category{OffPeak, Shoulder, Peak, SolarFIT, ControlledLoad}

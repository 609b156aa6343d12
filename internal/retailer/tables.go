// Package retailer holds how individual retailers label tariffs on their
// bills, keyed to the category each label should classify as.
package retailer

import (
	"sort"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Table maps one retailer's bill labels onto categories.
type Table struct {
	Labels   map[string]model.Category
	Retailer string
}

var tables = []Table{
	{Retailer: "Tango", Labels: map[string]model.Category{
		"Peak":          model.Peak,
		"Shoulder":      model.Shoulder,
		"Off Peak":      model.OffPeak,
		"Supply Charge": model.SupplyCharge,
	}},
	{Retailer: "Origin", Labels: map[string]model.Category{
		"Peak":                    model.Peak,
		"General Usage":           model.Peak,
		"Shoulder":                model.Shoulder,
		"Off-Peak":                model.OffPeak,
		"Network Access Charge":   model.SupplyCharge,
		"AEMO Participant Charge": model.Unbundled,
		"AEMO Ancillary Charge":   model.Unbundled,
		"AEMO FRC Operations":     model.Unbundled,
		"PRC Charge":              model.Unbundled,
		"Access Charge":           model.SupplyCharge,
		"Solar Meter Charge":      model.SolarFIT,
	}},
	{Retailer: "CovaU", Labels: map[string]model.Category{
		"Peak Usage":              model.Peak,
		"Off Peak Usage":          model.OffPeak,
		"Shoulder Usage":          model.Shoulder,
		"Network Capacity Charge": model.UnknownDemand,
		"Daily Supply Charge":     model.SupplyCharge,
	}},
	{Retailer: "Next Business Energy", Labels: map[string]model.Category{
		"Peak - step 1":               model.Peak,
		"Peak - step 2":               model.Peak,
		"Service To Property Charge":  model.SupplyCharge,
		"Max Demand":                  model.UnknownDemand,
		"Max Demand (non-summer)":     model.NonSummerDemand,
		"Metering Charge":             model.MeteringCharge,
		"Network Daily Charge (Cost)": model.SupplyCharge,
		"GEC Charge":                  model.Unbundled,
		"Controlled Load":             model.ControlledLoad,
	}},
	{Retailer: "Red Energy", Labels: map[string]model.Category{
		"Total CL1":                  model.ControlledLoad,
		"TOTAL CL2":                  model.ControlledLoad,
		"Total Peak":                 model.Peak,
		"Total Shoulder":             model.Shoulder,
		"Total Off Peak":             model.OffPeak,
		"Demand":                     model.UnknownDemand,
		"Service to Property Charge": model.SupplyCharge,
	}},
	{Retailer: "Blue NRG", Labels: map[string]model.Category{
		"Daily Supply Charge": model.SupplyCharge,
		"Peak period":         model.Peak,
		"Off peak period":     model.OffPeak,
		"Off-Peak":            model.OffPeak,
	}},
	{Retailer: "Momentum", Labels: map[string]model.Category{
		"Peak":                   model.Peak,
		"Off Peak":               model.OffPeak,
		"Daily Charge":           model.SupplyCharge,
		"Metering Charge":        model.MeteringCharge,
		"Summer Demand (KW/Mth)": model.SummerDemand,
	}},
	{Retailer: "GloBird", Labels: map[string]model.Category{
		"Daily Charge":   model.SupplyCharge,
		"Peak Usage":     model.Peak,
		"Offpeak Usage":  model.OffPeak,
		"Shoulder Usage": model.Shoulder,
	}},
	{Retailer: "Alinta", Labels: map[string]model.Category{
		"Anytime - Step 1":            model.Peak,
		"Anytime - Step 2":            model.Peak,
		"Anytime - Step 3":            model.Peak,
		"Anytime - Remaining balance": model.Peak,
		"Daily":                       model.SupplyCharge,
	}},
	{Retailer: "Sumo", Labels: map[string]model.Category{
		"Off Peak Energy": model.OffPeak,
		"Peak Energy":     model.Peak,
		"Standing Charge": model.SupplyCharge,
		"Demand c/kW/Day": model.UnknownDemand,
	}},
	{Retailer: "Synergy", Labels: map[string]model.Category{
		"On peak":       model.Peak,
		"Off peak":      model.OffPeak,
		"Supply charge": model.SupplyCharge,
	}},
	{Retailer: "First Energy", Labels: map[string]model.Category{
		"General Usage (22) ‐ Step 1": model.Peak,
		"General Usage (22) ‐ Step 2": model.Peak,
		"Daily Supply Charge":         model.SupplyCharge,
	}},
	{Retailer: "Powershop", Labels: map[string]model.Category{
		"All Day Usage":                 model.Peak,
		"Daily (125.88 c/day x 2 days)": model.SupplyCharge,
	}},
	{Retailer: "ReAmped", Labels: map[string]model.Category{
		"Peak":                model.Peak,
		"Off Peak":            model.OffPeak,
		"Daily Supply Charge": model.SupplyCharge,
	}},
	{Retailer: "Simply", Labels: map[string]model.Category{
		"Supply Service Charge":      model.SupplyCharge,
		"Supply Charges ( 31 Days )": model.SupplyCharge,
		"First":                      model.Peak,
		"Next":                       model.Peak,
	}},
	{Retailer: "Q Energy", Labels: map[string]model.Category{
		"Supply Charge":        model.SupplyCharge,
		"Usage Off Peak Usage": model.OffPeak,
		"Usage Peak Usage":     model.Peak,
		"Usage Shoulder Usage": model.Shoulder,
		"Peak Demand":          model.UnknownDemand,
	}},
	{Retailer: "Discover", Labels: map[string]model.Category{
		"Peak":               model.Peak,
		"Off Peak":           model.OffPeak,
		"Daily Supply":       model.SupplyCharge,
		"Non Summer Peak":    model.NonSummerDemand,
		"Summer Peak Demand": model.SummerDemand,
	}},
	{Retailer: "EnergyAustralia", Labels: map[string]model.Category{
		"* Total Plan 12 (Business) Peak Consumption - Block 1":                     model.Peak,
		"Peak Consumption - Block 2":                                                model.Peak,
		"* Total Plan 12 (Business) Supply Charge":                                  model.SupplyCharge,
		"* Flexi Plan (Home) Shoulder Consumption (3.25311 kWh/day)^":               model.Shoulder,
		"* Flexi Plan (Home) Off Peak Consumption (1.61511 kWh/day)^":               model.OffPeak,
		"* Flexi Plan (Home) Supply Charge":                                         model.SupplyCharge,
		"* Flexi Plan (Home) Peak Consumption (1.39990 kWh/day)^":                   model.Peak,
		"* Flexi Plan (Home) Demand Non Summer Non Winter (01/10/2023 - 31/10/2023": model.NonSummerDemand,
		"* Flexi Plan (Home) Demand Summer (01/11/2023 - 30/11/2023) ":              model.SummerDemand,
	}},
	{Retailer: "Powerdirect", Labels: map[string]model.Category{
		"Peak":     model.Peak,
		"Off peak": model.OffPeak,
		"Shoulder": model.Shoulder,
	}},
	{Retailer: "Energy Trade", Labels: map[string]model.Category{
		"Consumption Charge (kWh)": model.Peak,
		"Daily Charge":             model.SupplyCharge,
	}},
	{Retailer: "Enova", Labels: map[string]model.Category{
		"Daily Charge Business Flat": model.SupplyCharge,
		"Anytime Energy Usage":       model.Peak,
	}},
	{Retailer: "GEE", Labels: map[string]model.Category{
		"Peak Usage":        model.Peak,
		"Shoulder Usage":    model.Shoulder,
		"Demand (KW/Month)": model.UnknownDemand,
	}},
	{Retailer: "Mojo", Labels: map[string]model.Category{
		"Usage Anytime Usage": model.Peak,
	}},
	{Retailer: "Elysian", Labels: map[string]model.Category{
		"Included Peak Usage":   model.Peak,
		"Supply Days":           model.SupplyCharge,
		"Additional Peak Usage": model.Peak,
	}},
	{Retailer: "Powerclub", Labels: map[string]model.Category{
		"Peak":               model.Peak,
		"High Season Demand": model.SummerDemand,
	}},
	{Retailer: "Shell", Labels: map[string]model.Category{
		"Meter Charge": model.MeteringCharge,
		"VIC PEAK":     model.Peak,
		"VIC Off Peak": model.OffPeak,
	}},
	{Retailer: "Win Energy", Labels: map[string]model.Category{
		"Off-Peak Charge": model.OffPeak,
		"Peak Charge":     model.Peak,
		"Supply Charge":   model.SupplyCharge,
	}},
	{Retailer: "ENSA", Labels: map[string]model.Category{
		"Total Consumption":   model.Peak,
		"Daily Supply Charge": model.SupplyCharge,
	}},
}

// All returns every retailer table. The tables are shared and must not be
// modified.
func All() []Table {
	return tables
}

// CollectLabels returns the distinct labels, across all retailers, whose
// category is one of categories, sorted. With no categories every label is
// returned.
func CollectLabels(categories ...model.Category) []string {
	want := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}

	seen := make(map[string]bool)
	for _, t := range tables {
		for label, c := range t.Labels {
			if len(want) == 0 || want[c] {
				seen[label] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

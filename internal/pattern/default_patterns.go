package pattern

import "github.com/Veraticus/bill-autoreader/internal/model"

var (
	environmentRules = []string{"LRET", "ESC", "SRES", "LRET", "SREC", "VEET"}
	marketRules      = []string{"ancillary", "pool", "participant"}
)

// DefaultRuleSet returns the built-in rules and tariff groups. Each call
// returns a fresh copy.
func DefaultRuleSet() model.RuleSet {
	return model.RuleSet{
		Rules: map[model.Category][]string{
			// Unbundled market charges.
			model.LRET:              {"LRET"},
			model.ESC:               {"ESC"},
			model.SRES:              {"SRES"},
			model.SREC:              {"SREC"},
			model.VEET:              {"VEET"},
			model.AEMOAncillary:     {"ancillary"},
			model.AEMOPoolFees:      {"pool"},
			model.ParticipantCharge: {"participant"},
			model.Environment:       append([]string{}, environmentRules...),
			model.Market:            append([]string{}, marketRules...),
			model.Unbundled:         append(append([]string{}, environmentRules...), marketRules...),

			// Charge table.
			model.Peak: {
				// step with no off/summer/demand/shoulder/solar/controlled before it
				`^[\.]*((?!(off|summer|demand|shoulder|solar|controlled)).)*step`,
				// whole word peak, none of the competing words anywhere
				`^(?!.*\b(?:off|summer|demand|shoulder|solar|controlled)\b).*\bpeak\b.*$`,
				`^[\.]*((?!(off|summer|demand|shoulder|solar|controlled)).)*usage`,
				"^summer peak$",
				"retail peak",
				"retail - peak",
				"network - peak",
				"vic peak",
				"nsw peak",
				"cmg - peak",
				"^peak$",
				`^peak\s\(.*?\)$`,
				"^peak gas",
				"general usage",
				"anytime",
				"any time",
				"flat usage",
				"^(?!.*feed-in).*standard.*",
				"total peak",
				"electricity consumption",
				"all usage",
				"next",
				"first",
				"balance",
				// lpg
				"metered lpg",
				"kg",
				"lpg propane",
			},
			model.OffPeak: {
				"off_peak",
				"off peak",
				"off-peak",
				"(vic|cmg) off-peak",
				"offpeak",
				"retail - off peak",
			},
			model.Shoulder: {"Shoulder", "retail - shoulder"},
			model.SupplyCharge: {
				"supply_charge",
				"^daily",
				"^supply",
				"daily",
				`supply\s*charge`,
				`.aily\s*supply`,
				`s\w+y\s*ch\w+e`,
				"supply days",
				"network daily charge",
				"service to property charge",
				"service",
				`service\s*to\s*property`,
				"Gas Daily Charge",
				"(CMG)*Supply Charge",
				"fixed",
				"standing charge",
			},
			model.OtherCharges:    {"fee", "credit card", "Meter Read Fee", "debit card", "meter read"},
			model.SummerDemand:    {"summer_demand", "^(?!(non)).*Summer"},
			model.NonSummerDemand: {"nonsummer_demand", "Non-Summer Demand", "non summer", `^[\.]*((?!(off|peak)).)*winter`},
			model.UnknownDemand:   {"unknown_demand", "demand", "capacity"},
			model.SolarFIT:        {"solar_fit", "solar", "feed-in"},
			model.ControlledLoad:  {"controlled_load", "controlled load", "CL2", "dedicated circuit"},
			model.MeteringCharge:  {"metering_charge", "metering", "Microgrid Child"},
			model.Other:           {"^other$", "AEMO Charges"},

			// Discount table.
			model.Discount:            {"discount"},
			model.DiscountFromLabel:   {`[0-9]+%`},
			model.TotalBeforeDiscount: {"electricity charge", "gas charge", "total charge"},
		},
		Groups: map[model.TariffGroup][]model.Category{
			model.EnergyConsumption: {
				model.SupplyCharge,
				model.Peak,
				model.OffPeak,
				model.Shoulder,
				model.ControlledLoad,
				model.MeteringCharge,
				model.NonSummerDemand,
				model.SummerDemand,
				model.SolarFIT,
				model.UnknownDemand,
				model.Other,
			},
			model.MarketTariff: {
				model.LRET,
				model.ESC,
				model.SRES,
				model.SREC,
				model.VEET,
				model.AEMOAncillary,
				model.AEMOPoolFees,
				model.ParticipantCharge,
			},
		},
	}
}

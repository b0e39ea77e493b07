package report

import "github.com/wheelease/wheelease/internal/common/errs"

// Kind 报表种类的封闭枚举。边界处用 ParseKind 校验，
// 每种报表一个处理分支，不做字符串散转。
type Kind string

const (
	KindAvailableVehicles   Kind = "available_vehicles"
	KindRentalSummary       Kind = "rental_summary"
	KindUtilisationRate     Kind = "utilisation_rate"
	KindLoyalty             Kind = "loyalty_report"
	KindLocationPerformance Kind = "rental_loc_performance"
)

// Info 报表目录条目。
type Info struct {
	Kind        Kind   `json:"kind"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
}

var catalogue = []Info{
	{
		Kind:        KindAvailableVehicles,
		FullName:    "List Available Vehicles by Category and Location",
		Description: "Available vehicles sorted by category and location, for finding a vehicle in the desired category near the desired branch.",
	},
	{
		Kind:        KindRentalSummary,
		FullName:    "Daily Rental Summary Report",
		Description: "Number of vehicles rented on a given date, grouped by vehicle category.",
	},
	{
		Kind:        KindUtilisationRate,
		FullName:    "Vehicle Utilisation Rate",
		Description: "Per vehicle, rented days divided by days in the period, highest first.",
	},
	{
		Kind:        KindLoyalty,
		FullName:    "Customer Loyalty Report",
		Description: "Customers with two or more rentals within the trailing year, by rental count descending.",
	},
	{
		Kind:        KindLocationPerformance,
		FullName:    "Performance Analysis of Rental Locations",
		Description: "Per branch: total revenue, average rental duration and rental count, by revenue descending.",
	},
}

// Catalogue 全部报表的元数据，顺序固定。
func Catalogue() []Info {
	out := make([]Info, len(catalogue))
	copy(out, catalogue)
	return out
}

// ParseKind 校验报表名。未知名字按 NotFound 处理。
func ParseKind(s string) (Kind, error) {
	for _, info := range catalogue {
		if string(info.Kind) == s {
			return info.Kind, nil
		}
	}
	return "", errs.NotFoundf("report %q not found", s)
}

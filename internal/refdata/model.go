package refdata

// 静态参照表：类别/车型/厂商/型号/网点/日租价。
// 建表后只读，核心层在一次会话内视为不可变。

type VehicleType struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (VehicleType) TableName() string { return "vehicle_type" }

type Category struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:32;not null"`
}

func (Category) TableName() string { return "vehicle_category" }

type Manufacturer struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null"`
}

func (Manufacturer) TableName() string { return "manufacturer" }

type Model struct {
	ID             int    `gorm:"primaryKey"`
	Name           string `gorm:"size:64;not null;column:model"`
	ManufacturerID int    `gorm:"index;not null"`
}

func (Model) TableName() string { return "model" }

type Branch struct {
	ID      int    `gorm:"primaryKey"`
	Address string `gorm:"size:128"`
	City    string `gorm:"size:64"`
}

func (Branch) TableName() string { return "branch" }

type DailyRate struct {
	ID       int     `gorm:"primaryKey"`
	Category string  `gorm:"size:32"`
	Price    float64 `gorm:"not null"`
}

func (DailyRate) TableName() string { return "daily_rate" }

// Tables 一次会话内加载好的全部参照数据。
type Tables struct {
	Types         map[int]string
	Categories    map[int]string
	Manufacturers map[int]string
	Models        map[int]Model
	Branches      map[int]Branch
	DailyRates    map[int]DailyRate
}

func (t *Tables) TypeName(id int) (string, bool) {
	name, ok := t.Types[id]
	return name, ok
}

func (t *Tables) CategoryName(id int) (string, bool) {
	name, ok := t.Categories[id]
	return name, ok
}

func (t *Tables) ManufacturerName(id int) (string, bool) {
	name, ok := t.Manufacturers[id]
	return name, ok
}

func (t *Tables) BranchName(id int) (string, bool) {
	b, ok := t.Branches[id]
	if !ok {
		return "", false
	}
	return b.Address, true
}

// Fixture 返回开发/测试用的内存参照数据（与 seed 数据一致）。
func Fixture() *Tables {
	return &Tables{
		Types:      map[int]string{1: "Car", 2: "Bike", 3: "Scooter"},
		Categories: map[int]string{1: "Economy", 2: "Mid Size", 3: "Premium"},
		Manufacturers: map[int]string{
			1: "Tesla", 2: "Ford", 3: "Mini", 4: "BMW", 5: "Mercedes",
			6: "Toyota", 7: "Porsche", 8: "Honda", 9: "Vespa",
		},
		Models: map[int]Model{
			1: {ID: 1, Name: "Yaris Hatchback", ManufacturerID: 6},
			2: {ID: 2, Name: "Gold Wing Tour", ManufacturerID: 8},
			3: {ID: 3, Name: "SXL 150", ManufacturerID: 9},
		},
		Branches: map[int]Branch{
			1: {ID: 1, Address: "City Centre", City: "London"},
			2: {ID: 2, Address: "Airport", City: "London"},
			3: {ID: 3, Address: "Train Station", City: "London"},
		},
		DailyRates: map[int]DailyRate{
			1: {ID: 1, Category: "Economy", Price: 35},
			2: {ID: 2, Category: "Mid Size", Price: 55},
			3: {ID: 3, Category: "Premium", Price: 90},
		},
	}
}

package entity

// Severity степень повреждения.
type Severity string

const (
	SeverityNoDamage Severity = "no_damage"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Part каноническое название детали кузова.
type Part string

const (
	PartBumper     Part = "bumper"
	PartDoor       Part = "door"
	PartHood       Part = "hood"
	PartFender     Part = "fender"
	PartHeadlight  Part = "headlight"
	PartTaillight  Part = "taillight"
	PartWindshield Part = "windshield"
	PartMirror     Part = "mirror"
	PartGrille     Part = "grille"
	PartOther      Part = "other"
)

// Parts перечисляет всю таксономию деталей.
var Parts = []Part{
	PartBumper, PartDoor, PartHood, PartFender, PartHeadlight,
	PartTaillight, PartWindshield, PartMirror, PartGrille, PartOther,
}

// CarCategory грубый класс автомобиля для множителя стоимости.
type CarCategory string

const (
	CategoryHatchback CarCategory = "hatchback"
	CategorySedan     CarCategory = "sedan"
	CategorySUV       CarCategory = "suv"
	CategoryLuxury    CarCategory = "luxury"
	CategoryUnknown   CarCategory = "unknown"
)

// Categories перечисляет все категории автомобилей.
var Categories = []CarCategory{
	CategoryHatchback, CategorySedan, CategorySUV, CategoryLuxury, CategoryUnknown,
}

// DamagedParts количество повреждений по каноническим деталям.
type DamagedParts map[Part]int

// DetectionSummary итог агрегации детекций одного изображения.
type DetectionSummary struct {
	Severity        Severity     `json:"severity"`
	DamageRatio     float64      `json:"damage_ratio"`
	DamagedParts    DamagedParts `json:"damaged_parts"`
	NumDamagedParts int          `json:"num_damaged_parts"`
	RawPredictions  []Detection  `json:"raw_predictions"`
}

// CostBreakdown промежуточные значения расчёта стоимости ремонта.
type CostBreakdown struct {
	Category           CarCategory `json:"category"`
	BaseSum            float64     `json:"base_sum"`
	SeverityMultiplier float64     `json:"severity_multiplier"`
	CarMultiplier      float64     `json:"car_multiplier"`
	Raw                float64     `json:"raw"`
	Total              int         `json:"total"`
}

// Assessment полный результат обработки фотографии.
type Assessment struct {
	Summary       *DetectionSummary `json:"summary"`
	CarType       string            `json:"car_type"`
	Severity      string            `json:"severity"`
	Cost          CostBreakdown     `json:"cost"`
	AnnotatedPath string            `json:"annotated_path,omitempty"`
}

// Description текстовое описание результата для пользователя.
type Description struct {
	Text string
}

package domain

// ScanIssue is a single problem the analysis service detected on a plant.
type ScanIssue struct {
	Code       string  `json:"code"`
	Severity   string  `json:"severity"`
	Confidence float64 `json:"confidence"`
}

// ScanTip is a care recommendation attached to an analysis result.
type ScanTip struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
}

// WeatherSnapshot is the ambient weather captured at analysis time.
type WeatherSnapshot struct {
	TempC      float64 `json:"tempC"`
	Humidity   float64 `json:"humidity"`
	Condition  string  `json:"condition"`
	CapturedAt string  `json:"capturedAt"`
}

// ScanResult is the structured output of the external plant analysis
// service. The core treats it as opaque input: it is mapped into a Plant
// but never produced here.
type ScanResult struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	PlantName       string           `json:"plantName"`
	Confidence      float64          `json:"confidence"`
	HealthScore     float64          `json:"score"`
	Issues          []ScanIssue      `json:"issues"`
	Recommendations []ScanTip        `json:"recommendations"`
	Weather         *WeatherSnapshot `json:"weatherSnapshot,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}

package domain

// PlantInput is the caller-supplied part of a new Plant. ID and timestamps
// are assigned by the store.
type PlantInput struct {
	Name           string            `json:"name"`
	ScientificName string            `json:"scientificName,omitempty"`
	Status         PlantStatus       `json:"status"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ActivityInput is the caller-supplied part of a new ActivityEntry.
type ActivityInput struct {
	PlantID    string         `json:"plantId"`
	Kind       ActivityKind   `json:"kind"`
	Quantity   string         `json:"quantity,omitempty"`
	Unit       string         `json:"unit,omitempty"`
	NPK        *NPK           `json:"npk,omitempty"`
	Note       string         `json:"note,omitempty"`
	DateISO    string         `json:"dateISO"`
	Time24     string         `json:"time24,omitempty"`
	Source     ActivitySource `json:"source"`
	Confidence float64        `json:"confidence,omitempty"`
}

package domain

// Patch types describe partial updates. A nil pointer means "leave the
// current value alone"; a set pointer replaces exactly that leaf. Each
// nested preference shape gets its own patch type so merges stay
// compile-time checked instead of reflective.

// PlantPatch is a partial update for a Plant. Metadata keys are merged
// into the existing map, not replaced wholesale.
type PlantPatch struct {
	Name           *string           `json:"name,omitempty"`
	ScientificName *string           `json:"scientificName,omitempty"`
	Status         *PlantStatus      `json:"status,omitempty"`
	ImageURL       *string           `json:"imageUrl,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ActivityPatch is a partial update for an ActivityEntry. Setting NPK to a
// non-nil pointer replaces the whole ratio; clearing it requires ClearNPK
// because a nil pointer is indistinguishable from "untouched".
type ActivityPatch struct {
	Kind       *ActivityKind   `json:"kind,omitempty"`
	Quantity   *string         `json:"quantity,omitempty"`
	Unit       *string         `json:"unit,omitempty"`
	NPK        *NPK            `json:"npk,omitempty"`
	ClearNPK   bool            `json:"clearNpk,omitempty"`
	Note       *string         `json:"note,omitempty"`
	DateISO    *string         `json:"dateISO,omitempty"`
	Time24     *string         `json:"time24,omitempty"`
	Source     *ActivitySource `json:"source,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
}

// PreferencesPatch is a partial update for the preference tree.
type PreferencesPatch struct {
	Enabled         *bool                 `json:"enabled,omitempty"`
	Delivery        *DeliveryPatch        `json:"delivery,omitempty"`
	SmartScheduling *SmartSchedulingPatch `json:"smartScheduling,omitempty"`
	Timing          *TimingPatch          `json:"timing,omitempty"`
}

// DeliveryPatch is a partial update for DeliveryChannels.
type DeliveryPatch struct {
	Push      *bool `json:"push,omitempty"`
	Sound     *bool `json:"sound,omitempty"`
	Vibration *bool `json:"vibration,omitempty"`
	Badge     *bool `json:"badge,omitempty"`
}

// SmartSchedulingPatch is a partial update for SmartScheduling.
type SmartSchedulingPatch struct {
	Enabled                   *bool `json:"enabled,omitempty"`
	WeatherIntegration        *bool `json:"weatherIntegration,omitempty"`
	SeasonalAdjustments       *bool `json:"seasonalAdjustments,omitempty"`
	BatchSimilarNotifications *bool `json:"batchSimilarNotifications,omitempty"`
	PriorityBasedDelivery     *bool `json:"priorityBasedDelivery,omitempty"`
}

// TimingPatch is a partial update for NotificationTiming.
type TimingPatch struct {
	PreferredTime *string          `json:"preferredTime,omitempty"`
	DaysOfWeek    []int            `json:"daysOfWeek,omitempty"`
	QuietHours    *QuietHoursPatch `json:"quietHours,omitempty"`
}

// QuietHoursPatch is a partial update for QuietHours.
type QuietHoursPatch struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Start   *string `json:"start,omitempty"`
	End     *string `json:"end,omitempty"`
}

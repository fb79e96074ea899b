package store

import (
	"github.com/acework2u/ai-smart-plants/internal/domain"
)

// Typed recursive merge for the preference tree. Each nested shape has its
// own merge function over its patch type, so a patch can only ever touch
// fields that exist and the compiler checks every leaf. A nil sub-patch
// leaves the whole branch alone; a set pointer replaces exactly that leaf.

func mergePreferences(base domain.NotificationPreferences, patch domain.PreferencesPatch) domain.NotificationPreferences {
	out := copyPreferences(base)
	if patch.Enabled != nil {
		out.Enabled = *patch.Enabled
	}
	if patch.Delivery != nil {
		out.Delivery = mergeDelivery(out.Delivery, *patch.Delivery)
	}
	if patch.SmartScheduling != nil {
		out.SmartScheduling = mergeSmartScheduling(out.SmartScheduling, *patch.SmartScheduling)
	}
	if patch.Timing != nil {
		out.Timing = mergeTiming(out.Timing, *patch.Timing)
	}
	return out
}

func mergeDelivery(base domain.DeliveryChannels, patch domain.DeliveryPatch) domain.DeliveryChannels {
	if patch.Push != nil {
		base.Push = *patch.Push
	}
	if patch.Sound != nil {
		base.Sound = *patch.Sound
	}
	if patch.Vibration != nil {
		base.Vibration = *patch.Vibration
	}
	if patch.Badge != nil {
		base.Badge = *patch.Badge
	}
	return base
}

func mergeSmartScheduling(base domain.SmartScheduling, patch domain.SmartSchedulingPatch) domain.SmartScheduling {
	if patch.Enabled != nil {
		base.Enabled = *patch.Enabled
	}
	if patch.WeatherIntegration != nil {
		base.WeatherIntegration = *patch.WeatherIntegration
	}
	if patch.SeasonalAdjustments != nil {
		base.SeasonalAdjustments = *patch.SeasonalAdjustments
	}
	if patch.BatchSimilarNotifications != nil {
		base.BatchSimilarNotifications = *patch.BatchSimilarNotifications
	}
	if patch.PriorityBasedDelivery != nil {
		base.PriorityBasedDelivery = *patch.PriorityBasedDelivery
	}
	return base
}

func mergeTiming(base domain.NotificationTiming, patch domain.TimingPatch) domain.NotificationTiming {
	if patch.PreferredTime != nil {
		base.PreferredTime = *patch.PreferredTime
	}
	if patch.DaysOfWeek != nil {
		base.DaysOfWeek = append([]int(nil), patch.DaysOfWeek...)
	}
	if patch.QuietHours != nil {
		base.QuietHours = mergeQuietHours(base.QuietHours, *patch.QuietHours)
	}
	return base
}

func mergeQuietHours(base domain.QuietHours, patch domain.QuietHoursPatch) domain.QuietHours {
	if patch.Enabled != nil {
		base.Enabled = *patch.Enabled
	}
	if patch.Start != nil {
		base.Start = *patch.Start
	}
	if patch.End != nil {
		base.End = *patch.End
	}
	return base
}

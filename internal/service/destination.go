package service

import (
	"strings"

	"github.com/hedgecoast/signals/internal/model"
)

// CollectEmails returns the distinct email destinations of the rules that
// opted into email, in first-seen order. Blank destinations are skipped even
// when the flag is set. A destination shared by several rules appears once,
// so overlapping rules produce a single message.
func CollectEmails(rules []model.AlertRule) []string {
	return collectDestinations(rules, func(r model.AlertRule) (bool, string) {
		return r.NotifyToEmail, r.NotifyEmail
	})
}

// CollectSMSes returns the distinct SMS destinations of the rules that opted
// into SMS, in first-seen order.
func CollectSMSes(rules []model.AlertRule) []string {
	return collectDestinations(rules, func(r model.AlertRule) (bool, string) {
		return r.NotifyToSMS, r.NotifySMS
	})
}

func collectDestinations(rules []model.AlertRule, pick func(model.AlertRule) (bool, string)) []string {
	seen := make(map[string]struct{}, len(rules))
	destinations := make([]string, 0, len(rules))

	for _, rule := range rules {
		enabled, destination := pick(rule)
		destination = strings.TrimSpace(destination)
		if !enabled || destination == "" {
			continue
		}
		if _, ok := seen[destination]; ok {
			continue
		}
		seen[destination] = struct{}{}
		destinations = append(destinations, destination)
	}

	return destinations
}

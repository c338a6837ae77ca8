// Package matcher implements rule-based relevance ranking of sponsor
// contacts against a creator's quiz answers.
package matcher

import (
	"fmt"
	"strings"

	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/taxonomy"
)

// Tag markers carried over from the contact database export. The longer
// marker must be checked first: every contact carrying it also contains the
// shorter one as a substring.
const (
	tagActiveSponsor = "podcast spend / sponsorship & influencer"
	tagPodcastSpend  = "podcast spend"
)

// Scoring caps and increments.
const (
	categoryHitPoints = 12
	categoryCap       = 45
	listenerHitPoints = 8
	listenerCap       = 20
	multiTopicFloor   = 30
	visibilityFloor   = 25
	maxScore          = 100
)

// broadAppealTerms qualify a contact for the multi-topic floor.
var broadAppealTerms = []string{"retailer", "consumer", "online", "brand", "food", "beverage"}

// ScoreContact scores one contact against one answer set. Pure and
// deterministic: same inputs always yield the same (score, reasons) pair.
// Reasons are appended in rule order, not importance order.
//
// Keyword matching is substring-based on purpose; partial-word collisions are
// pinned behavior inherited from the contact database this taxonomy was
// curated against.
func ScoreContact(answers model.SurveyAnswers, c model.Contact, tables *taxonomy.Tables) (int, []string) {
	searchText := strings.ToLower(c.Description + " " + c.Industries + " " + c.Title)
	tagsText := strings.ToLower(c.Tags)

	score := 0
	var reasons []string

	// Prior podcast ad spend is the strongest single signal.
	if strings.Contains(tagsText, tagActiveSponsor) {
		score += 20
		reasons = append(reasons, "Active podcast sponsor")
	} else if strings.Contains(tagsText, tagPodcastSpend) {
		score += 15
		reasons = append(reasons, "Has podcast ad spend")
	}

	// Category keyword hits, capped at 45.
	if hits := countKeywordHits(tables.CategoryKeywords(answers.Category), searchText); hits > 0 {
		score += capped(hits*categoryHitPoints, categoryCap)
		reasons = append(reasons, fmt.Sprintf("Industry aligns with %s podcasts", humanize(string(answers.Category))))
	}

	// Listener archetype keyword hits over the unioned sets, capped at 20.
	if hits := countKeywordHits(tables.UnionListenerKeywords(answers.ListenerType), searchText); hits > 0 {
		score += capped(hits*listenerHitPoints, listenerCap)
		reasons = append(reasons, fmt.Sprintf("Relevant to %s audience", joinListenerLabels(answers.ListenerType)))
	}

	// Role-title ladder: first match wins, highest-value roles checked first.
	titleLower := strings.ToLower(c.Title)
	switch {
	case containsAny(titleLower, "sponsorship", "partnership"):
		score += 15
		reasons = append(reasons, "Handles sponsorship partnerships")
	case strings.Contains(titleLower, "influencer"):
		score += 12
		reasons = append(reasons, "Manages influencer marketing")
	case containsAny(titleLower, "advertising", "media"):
		score += 10
		reasons = append(reasons, "Manages advertising")
	case strings.Contains(titleLower, "marketing"):
		score += 8
		reasons = append(reasons, "Marketing role")
	}

	// Multi-topic shows give broad-appeal brands a floor of exactly 30.
	// A floor, not a bonus: it never raises a score already at or above 30.
	if answers.Category == model.CategoryMultiTopic && score < multiTopicFloor {
		for _, term := range broadAppealTerms {
			if strings.Contains(searchText, term) {
				score = multiTopicFloor
				if len(reasons) == 0 {
					reasons = append(reasons, "Broad consumer brand")
				}
				break
			}
		}
	}

	// Cap at 100; lift any nonzero score to the visibility floor.
	if score > 0 && score < visibilityFloor {
		score = visibilityFloor
	}
	if score > maxScore {
		score = maxScore
	}

	if score > 0 && len(reasons) == 0 {
		reasons = []string{"General advertising contact"}
	}

	return score, reasons
}

// countKeywordHits counts how many distinct keywords appear as substrings of
// text. Each keyword counts at most once regardless of repetition.
func countKeywordHits(keywords []string, text string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}
	return hits
}

// capped returns v limited to max.
func capped(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// humanize turns an enum value like "pop-culture" into "pop culture".
func humanize(v string) string {
	return strings.ReplaceAll(v, "-", " ")
}

// joinListenerLabels renders the selected listener types as a comma-joined
// human-readable list.
func joinListenerLabels(types []model.ListenerType) string {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = humanize(string(t))
	}
	return strings.Join(labels, ", ")
}

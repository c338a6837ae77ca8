package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wildcast/wildcast/internal/model"
)

// listenerAudienceLabels maps each archetype to the audience descriptors
// sponsor records use in their audience preferences. This scorer is a
// separate, simpler path from contact matching: sponsors declare explicit
// preferences, so no keyword taxonomy is involved.
var listenerAudienceLabels = map[model.ListenerType][]string{
	model.ListenerFoundersExecutives: {"Knowledge workers", "Entrepreneurs", "Decision makers", "Team leaders", "Ambitious professionals"},
	model.ListenerParentsCaregivers:  {"Parents", "Busy families", "Health-conscious consumers"},
	model.ListenerCreatorsInfluencers: {"Creators", "Side hustlers", "Content creators"},
	model.ListenerCuriousGeneralists: {"Lifelong learners", "Multitaskers", "Self-improvement focused"},
	model.ListenerHealthFitness:      {"Athletes", "Fitness enthusiasts", "Health-conscious consumers", "Active lifestyle"},
	model.ListenerYoungProfessionals: {"Young professionals", "Career-driven", "Millennials", "Ambitious professionals"},
	model.ListenerHobbyistsDIY:       {"Hobbyists", "DIY enthusiasts", "Makers", "Craft lovers", "Home improvers"},
}

// ScoreSponsor scores one sponsor brand against quiz answers. Unlike contact
// scoring, every sponsor gets at least the visibility floor, so the result
// list always contains the full sponsor pool.
func ScoreSponsor(answers model.SurveyAnswers, s model.Sponsor) (int, []string) {
	score := 0
	var reasons []string

	// Category preference (up to 40 points).
	if answers.Category != "" && containsCategory(s.PreferredCategories, answers.Category) {
		score += 40
		reasons = append(reasons, fmt.Sprintf("Matches %s category", humanize(string(answers.Category))))
	} else if answers.Category == model.CategoryMultiTopic {
		// Multi-topic shows get partial credit with every sponsor.
		score += 20
		reasons = append(reasons, "Appeals to diverse audiences")
	}

	// Tone preference (up to 30 points).
	if answers.Tone != "" && containsTone(s.PreferredTones, answers.Tone) {
		score += 30
		reasons = append(reasons, fmt.Sprintf("%s tone fits brand", humanize(string(answers.Tone))))
	}

	// Format preference (up to 20 points).
	if answers.Format != "" && containsFormat(s.PreferredFormats, answers.Format) {
		score += 20
		reasons = append(reasons, fmt.Sprintf("%s format aligns", string(answers.Format)))
	}

	// Audience overlap (up to 10 points).
	if len(answers.ListenerType) > 0 && audienceOverlaps(s.AudiencePreferences, answers.ListenerType) {
		score += 10
		reasons = append(reasons, "Audience demographics align")
	}

	if score < visibilityFloor {
		score = visibilityFloor
	}
	if score > maxScore {
		score = maxScore
	}
	if len(reasons) == 0 {
		reasons = []string{"Broad audience appeal"}
	}

	return score, reasons
}

// MatchSponsors scores the full sponsor pool and returns it sorted by score
// descending, ties in input order.
func MatchSponsors(answers model.SurveyAnswers, sponsors []model.Sponsor) []model.SponsorMatch {
	matches := make([]model.SponsorMatch, len(sponsors))
	for i, s := range sponsors {
		score, reasons := ScoreSponsor(answers, s)
		matches[i] = model.SponsorMatch{Sponsor: s, MatchScore: score, MatchReasons: reasons}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return matches
}

// audienceOverlaps reports whether any sponsor audience preference mentions
// any descriptor of the selected listener types (case-insensitive substring).
func audienceOverlaps(prefs []string, types []model.ListenerType) bool {
	seen := make(map[string]struct{})
	var targets []string
	for _, t := range types {
		for _, label := range listenerAudienceLabels[t] {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			targets = append(targets, strings.ToLower(label))
		}
	}
	for _, pref := range prefs {
		prefLower := strings.ToLower(pref)
		for _, target := range targets {
			if strings.Contains(prefLower, target) {
				return true
			}
		}
	}
	return false
}

func containsCategory(list []model.PodcastCategory, v model.PodcastCategory) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}

func containsTone(list []model.PodcastTone, v model.PodcastTone) bool {
	for _, t := range list {
		if t == v {
			return true
		}
	}
	return false
}

func containsFormat(list []model.PodcastFormat, v model.PodcastFormat) bool {
	for _, f := range list {
		if f == v {
			return true
		}
	}
	return false
}

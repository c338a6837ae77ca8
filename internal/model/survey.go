package model

import (
	"encoding/json"
	"time"
)

// PodcastCategory identifies the primary subject matter of a show.
type PodcastCategory string

const (
	CategoryTech          PodcastCategory = "tech"
	CategoryWellness      PodcastCategory = "wellness"
	CategoryBusiness      PodcastCategory = "business"
	CategoryPopCulture    PodcastCategory = "pop-culture"
	CategoryEducation     PodcastCategory = "education"
	CategoryEntertainment PodcastCategory = "entertainment"
	CategoryMultiTopic    PodcastCategory = "multi-topic"
)

// AudienceSize buckets weekly reach. Matching only runs for shows that
// report a size; the scorer itself never reads it.
type AudienceSize string

const (
	AudienceUnder10K AudienceSize = "under-10k"
	AudienceOver10K  AudienceSize = "over-10k"
)

// ListenerType is an audience archetype. The quiz allows multi-select.
type ListenerType string

const (
	ListenerFoundersExecutives ListenerType = "founders-executives"
	ListenerParentsCaregivers  ListenerType = "parents-caregivers"
	ListenerCreatorsInfluencers ListenerType = "creators-influencers"
	ListenerCuriousGeneralists ListenerType = "curious-generalists"
	ListenerHealthFitness      ListenerType = "health-fitness-enthusiasts"
	ListenerYoungProfessionals ListenerType = "young-professionals"
	ListenerHobbyistsDIY       ListenerType = "hobbyists-diy"
)

// PodcastTone describes the vibe of a show. Consumed by the sponsor-brand
// preference scorer, not the contact scorer.
type PodcastTone string

const (
	ToneTacticalSerious        PodcastTone = "tactical-serious"
	ToneRelaxedConversational  PodcastTone = "relaxed-conversational"
	ToneExperimentalIrreverent PodcastTone = "experimental-irreverent"
	ToneInspiringHeartfelt     PodcastTone = "inspiring-heartfelt"
)

// ReleaseFrequency is the show's publishing cadence.
type ReleaseFrequency string

const (
	FrequencyDaily    ReleaseFrequency = "daily"
	FrequencyWeekly   ReleaseFrequency = "weekly"
	FrequencyBiweekly ReleaseFrequency = "biweekly"
)

// PodcastFormat is the show's production format.
type PodcastFormat string

const (
	FormatSolo      PodcastFormat = "solo"
	FormatInterview PodcastFormat = "interview"
	FormatPanel     PodcastFormat = "panel"
	FormatMixed     PodcastFormat = "mixed"
)

// PrimaryGoal is what the creator wants out of the product right now.
type PrimaryGoal string

const (
	GoalSponsorships PrimaryGoal = "sponsorships"
	GoalGrowAudience PrimaryGoal = "grow-audience"
	GoalBoth         PrimaryGoal = "both"
)

// ListenerTypes decodes either a single JSON string or an array of strings.
// The quiz originally submitted a single value and later became multi-select,
// so both wire shapes are in the wild.
type ListenerTypes []ListenerType

// UnmarshalJSON implements json.Unmarshaler.
func (l *ListenerTypes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = ListenerTypes{ListenerType(single)}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make(ListenerTypes, 0, len(many))
	for _, t := range many {
		if t != "" {
			out = append(out, ListenerType(t))
		}
	}
	*l = out
	return nil
}

// SurveyAnswers is one creator's quiz answer set. Every field is optional;
// absence contributes nothing to scoring and is never an error.
type SurveyAnswers struct {
	Category         PodcastCategory  `json:"category,omitempty"`
	AudienceSize     AudienceSize     `json:"audienceSize,omitempty"`
	ListenerType     ListenerTypes    `json:"listenerType,omitempty"`
	Tone             PodcastTone      `json:"tone,omitempty"`
	ReleaseFrequency ReleaseFrequency `json:"releaseFrequency,omitempty"`
	Format           PodcastFormat    `json:"format,omitempty"`
	PrimaryGoal      PrimaryGoal      `json:"primaryGoal,omitempty"`
}

// PodcastInfo is the show metadata collected alongside the quiz.
type PodcastInfo struct {
	Email       string `json:"email"`
	PodcastName string `json:"podcastName"`
	PodcastURL  string `json:"podcastUrl"`
	Description string `json:"description"`
	HasMediaKit bool   `json:"hasMediaKit"`
}

// SurveySubmission is a persisted quiz run.
type SurveySubmission struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id,omitempty"`
	Answers     SurveyAnswers `json:"answers"`
	Email       string        `json:"email,omitempty"`
	PodcastName string        `json:"podcast_name,omitempty"`
	PodcastURL  string        `json:"podcast_url,omitempty"`
	Description string        `json:"description,omitempty"`
	HasMediaKit bool          `json:"has_media_kit"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// GrowthPlan is the audience-growth advice generated from quiz answers.
type GrowthPlan struct {
	CrossPromoShows        []string `json:"cross_promo_shows"`
	GuestingOpportunities  []string `json:"guesting_opportunities"`
	DistributionStrategies []string `json:"distribution_strategies"`
}

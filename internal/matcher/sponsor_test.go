package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildcast/wildcast/internal/model"
)

func TestScoreSponsorFullPreferenceMatch(t *testing.T) {
	s := model.Sponsor{
		BrandName:           "Notion",
		PreferredCategories: []model.PodcastCategory{model.CategoryTech, model.CategoryBusiness},
		PreferredTones:      []model.PodcastTone{model.ToneTacticalSerious},
		PreferredFormats:    []model.PodcastFormat{model.FormatInterview},
		AudiencePreferences: []string{"Knowledge workers", "Entrepreneurs"},
	}
	answers := model.SurveyAnswers{
		Category:     model.CategoryTech,
		Tone:         model.ToneTacticalSerious,
		Format:       model.FormatInterview,
		ListenerType: model.ListenerTypes{model.ListenerFoundersExecutives},
	}

	score, reasons := ScoreSponsor(answers, s)

	assert.Equal(t, 100, score)
	assert.Len(t, reasons, 4)
	assert.Contains(t, reasons, "Matches tech category")
	assert.Contains(t, reasons, "Audience demographics align")
}

func TestScoreSponsorNoPreferenceMatchGetsFloor(t *testing.T) {
	s := model.Sponsor{
		PreferredCategories: []model.PodcastCategory{model.CategoryWellness},
	}
	score, reasons := ScoreSponsor(model.SurveyAnswers{Category: model.CategoryTech}, s)

	assert.Equal(t, 25, score)
	assert.Equal(t, []string{"Broad audience appeal"}, reasons)
}

func TestScoreSponsorMultiTopicPartialCredit(t *testing.T) {
	s := model.Sponsor{
		PreferredCategories: []model.PodcastCategory{model.CategoryWellness},
	}
	score, reasons := ScoreSponsor(model.SurveyAnswers{Category: model.CategoryMultiTopic}, s)

	// 20 partial credit, lifted to the floor; the reason survives.
	assert.Equal(t, 25, score)
	assert.Equal(t, []string{"Appeals to diverse audiences"}, reasons)
}

func TestScoreSponsorAudienceOverlapIsCaseInsensitive(t *testing.T) {
	s := model.Sponsor{
		AudiencePreferences: []string{"Busy FITNESS ENTHUSIASTS and athletes"},
	}
	score, reasons := ScoreSponsor(model.SurveyAnswers{
		ListenerType: model.ListenerTypes{model.ListenerHealthFitness},
	}, s)

	assert.Equal(t, 25, score) // 10 raw, floored
	assert.Contains(t, reasons, "Audience demographics align")
}

func TestMatchSponsorsSortsAndKeepsFullPool(t *testing.T) {
	sponsors := []model.Sponsor{
		{ID: "miss"},
		{ID: "hit", PreferredCategories: []model.PodcastCategory{model.CategoryBusiness}},
		{ID: "miss-2"},
	}
	matches := MatchSponsors(model.SurveyAnswers{Category: model.CategoryBusiness}, sponsors)

	require.Len(t, matches, 3)
	assert.Equal(t, "hit", matches[0].ID)
	assert.Equal(t, "miss", matches[1].ID)
	assert.Equal(t, "miss-2", matches[2].ID)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.MatchScore, 25)
	}
}

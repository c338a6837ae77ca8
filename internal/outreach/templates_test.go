package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildcast/wildcast/internal/model"
)

func testMatch() model.ContactMatch {
	return model.ContactMatch{
		Contact: model.Contact{
			FirstName: "Dana",
			LastName:  "Reyes",
			Title:     "Head of Partnerships",
			Company:   "Brightcart",
		},
		MatchScore:   72,
		MatchReasons: []string{"Handles sponsorship partnerships"},
	}
}

func testInfo() model.PodcastInfo {
	return model.PodcastInfo{
		PodcastName: "Deploy Friday",
		PodcastURL:  "https://example.com/deploy-friday",
		Description: "Weekly interviews with platform engineers.",
		HasMediaKit: true,
	}
}

func TestDraftsRendersBothTemplates(t *testing.T) {
	answers := model.SurveyAnswers{
		Category:         model.CategoryTech,
		Tone:             model.ToneRelaxedConversational,
		ReleaseFrequency: model.FrequencyWeekly,
		ListenerType:     model.ListenerTypes{model.ListenerFoundersExecutives},
	}

	drafts := Drafts(testMatch(), answers, testInfo())
	require.Len(t, drafts, 2)
	assert.Equal(t, "professional", drafts[0].ID)
	assert.Equal(t, "casual", drafts[1].ID)

	for _, d := range drafts {
		assert.Contains(t, d.Content, "Dana Reyes")
		assert.Contains(t, d.Content, "Brightcart")
		assert.Contains(t, d.Content, "Deploy Friday")
		assert.Contains(t, d.Content, "https://example.com/deploy-friday")
		assert.Contains(t, d.Content, "founders and executives")
	}

	assert.Contains(t, drafts[0].Content, "media kit")
	assert.Contains(t, drafts[0].Content, "tech content with a relaxed conversational tone")
}

func TestDraftsDegradeWithoutAnswers(t *testing.T) {
	info := model.PodcastInfo{PodcastName: "Untitled Show", PodcastURL: "https://example.com"}
	match := model.ContactMatch{Contact: model.Contact{Company: "Acme"}}

	drafts := Drafts(match, model.SurveyAnswers{}, info)
	require.Len(t, drafts, 2)

	assert.Contains(t, drafts[0].Content, "Hi there,")
	assert.Contains(t, drafts[0].Content, "varied content with a authentic tone")
	assert.Contains(t, drafts[0].Content, "engaged listeners")
	assert.NotContains(t, drafts[0].Content, "media kit")
}

func TestSubject(t *testing.T) {
	info := model.PodcastInfo{PodcastName: "Deploy Friday"}

	assert.Equal(t, "Pop Culture Podcast Sponsorship Opportunity - Deploy Friday",
		Subject(model.SurveyAnswers{Category: model.CategoryPopCulture}, info))
	assert.Equal(t, "Podcast Sponsorship Opportunity - Deploy Friday",
		Subject(model.SurveyAnswers{}, info))
}

// Package outreach builds email drafts a creator can send to a matched
// sponsor contact.
package outreach

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wildcast/wildcast/internal/model"
)

// EmailDraft is one ready-to-edit outreach email.
type EmailDraft struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

var titleCaser = cases.Title(language.English)

// Drafts renders the two deterministic drafts (professional and casual) for
// one matched contact. Missing answers degrade to generic phrasing; nothing
// here errors.
func Drafts(match model.ContactMatch, answers model.SurveyAnswers, info model.PodcastInfo) []EmailDraft {
	contactName := strings.TrimSpace(match.FirstName + " " + match.LastName)
	if contactName == "" {
		contactName = "there"
	}
	brand := match.Company
	category := humanizeLabel(string(answers.Category), "varied")
	tone := humanizeLabel(string(answers.Tone), "authentic")
	frequency := string(answers.ReleaseFrequency)
	if frequency == "" {
		frequency = "regularly"
	}
	audience := audienceDescription(answers.ListenerType)

	about := ""
	if info.Description != "" {
		about = fmt.Sprintf("About my show: %s\n\n", info.Description)
	}
	mediaKit := ""
	if info.HasMediaKit {
		mediaKit = " I have a media kit ready to share."
	}

	professional := EmailDraft{
		ID:   "professional",
		Name: "Professional",
		Content: fmt.Sprintf(`Hi %s,

I'm the host of %s, and I believe there's a strong alignment between %s and my audience.

%sMy podcast focuses on %s content with a %s tone. We release episodes %s and have built an engaged audience of %s.

I'd love to explore a sponsorship partnership with %s.%s

Would you be open to a brief call to discuss?

Best regards,
[Your Name]

Listen: %s`,
			contactName, info.PodcastName, brand, about, category, tone,
			frequency, audience, brand, mediaKit, info.PodcastURL),
	}

	background := ""
	if info.Description != "" {
		background = fmt.Sprintf("Quick background: %s\n\n", info.Description)
	}

	casual := EmailDraft{
		ID:   "casual",
		Name: "Casual",
		Content: fmt.Sprintf(`Hey %s!

I host %s and I'm a big fan of what %s is doing.

%sMy show is all about %s with a %s vibe. I think your brand would really resonate with my listeners - they're mostly %s who tune in %s.

Would love to chat about a potential sponsorship. Got 15 minutes this week?

Cheers,
[Your Name]

%s`,
			contactName, info.PodcastName, brand, background, category, tone,
			audience, frequency, info.PodcastURL),
	}

	return []EmailDraft{professional, casual}
}

// Subject renders the email subject line for an outreach draft.
func Subject(answers model.SurveyAnswers, info model.PodcastInfo) string {
	if answers.Category == "" {
		return fmt.Sprintf("Podcast Sponsorship Opportunity - %s", info.PodcastName)
	}
	label := titleCaser.String(humanizeLabel(string(answers.Category), ""))
	return fmt.Sprintf("%s Podcast Sponsorship Opportunity - %s", label, info.PodcastName)
}

// audienceDescription renders the selected listener archetypes as prose.
func audienceDescription(types model.ListenerTypes) string {
	if len(types) == 0 {
		return "engaged listeners"
	}
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = expandArchetype(t)
	}
	return strings.Join(labels, ", ")
}

// expandArchetype spells out the shorthand archetype values.
func expandArchetype(t model.ListenerType) string {
	switch t {
	case model.ListenerFoundersExecutives:
		return "founders and executives"
	case model.ListenerParentsCaregivers:
		return "parents and caregivers"
	case model.ListenerCreatorsInfluencers:
		return "creators and influencers"
	case model.ListenerCuriousGeneralists:
		return "curious generalists"
	default:
		return strings.ReplaceAll(string(t), "-", " ")
	}
}

func humanizeLabel(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return strings.ReplaceAll(v, "-", " ")
}

// Package growth generates audience-growth advice from quiz answers.
package growth

import "github.com/wildcast/wildcast/internal/model"

// crossPromoByCategory suggests shows of comparable size for cross-promotion.
var crossPromoByCategory = map[model.PodcastCategory][]string{
	model.CategoryTech: {
		"Indie Hackers Podcast", "The Changelog", "Syntax.fm", "CodeNewbie",
		"Developer Tea",
	},
	model.CategoryWellness: {
		"The Model Health Show", "Feel Better, Live More", "The Mindset Mentor",
		"Optimal Health Daily", "The Wellness Mama Podcast",
	},
	model.CategoryBusiness: {
		"The Tim Ferriss Show", "How I Built This", "Masters of Scale",
		"The GaryVee Audio Experience", "Smart Passive Income",
	},
	model.CategoryPopCulture: {
		"Pop Culture Happy Hour", "The Watch", "Keep It!", "Las Culturistas",
		"Culturally Relevant",
	},
	model.CategoryEducation: {
		"TED Talks Daily", "Hidden Brain", "Freakonomics Radio",
		"Stuff You Should Know", "Revisionist History",
	},
	model.CategoryEntertainment: {
		"Conan O'Brien Needs a Friend", "WTF with Marc Maron", "Armchair Expert",
		"SmartLess", "Comedy Bang! Bang!",
	},
	model.CategoryMultiTopic: {
		"The Joe Rogan Experience", "Lex Fridman Podcast", "The Daily",
		"Call Her Daddy", "On Purpose with Jay Shetty",
	},
}

// guestingByCategory suggests larger shows worth pitching as a guest.
var guestingByCategory = map[model.PodcastCategory][]string{
	model.CategoryTech: {
		"Acquired (larger tech M&A stories)", "All-In Podcast (if you have unique insights)",
		"a16z Podcast (for founders)", "This Week in Startups",
	},
	model.CategoryWellness: {
		"The Doctor's Farmacy", "The Huberman Lab", "Rich Roll Podcast",
		"On Purpose with Jay Shetty",
	},
	model.CategoryBusiness: {
		"The Knowledge Project", "Invest Like the Best", "My First Million",
		"The Twenty Minute VC",
	},
	model.CategoryPopCulture: {
		"Who? Weekly", "Nerdist", "The Rewatchables", "Still Processing",
	},
	model.CategoryEducation: {
		"The Knowledge Project", "Making Sense with Sam Harris", "EconTalk",
		"The Art of Manliness",
	},
	model.CategoryEntertainment: {
		"ID10T with Chris Hardwick", "You Made It Weird", "Literally! with Rob Lowe",
		"Fly on the Wall",
	},
	model.CategoryMultiTopic: {
		"The Jordan Harbinger Show", "Impact Theory", "The School of Greatness",
		"Kwik Brain",
	},
}

// distributionByFormat suggests promotion tactics suited to the show format.
var distributionByFormat = map[model.PodcastFormat][]string{
	model.FormatSolo: {
		"Create short-form video clips for TikTok/Reels",
		"Repurpose episodes into newsletter content",
		"Build an email list with episode highlights",
		"Share key insights as Twitter/X threads",
		"Submit to podcast directories and aggregators",
		"Create quote graphics for Instagram",
	},
	model.FormatInterview: {
		"Ask guests to share on their social channels",
		"Tag guests in promotional posts",
		"Create guest highlight clips",
		"Build relationships with other podcast hosts",
		"Create a guest referral network",
		"Leverage guest audiences through cross-promotion",
	},
	model.FormatPanel: {
		"Have each host share to their audience",
		"Create debate/discussion highlight clips",
		"Host live recording events",
		"Build community around the panel dynamic",
		"Create spin-off content with individual hosts",
		"Leverage combined social reach",
	},
	model.FormatMixed: {
		"Diversify content across platforms",
		"Create format-specific promotion strategies",
		"A/B test which formats drive most growth",
		"Build anticipation for different episode types",
		"Create series within your show",
		"Repurpose content in multiple formats",
	},
}

// Plan builds a growth plan from quiz answers. Unknown or absent category
// and format fall back to the broadest suggestions.
func Plan(answers model.SurveyAnswers) model.GrowthPlan {
	category := answers.Category
	if _, ok := crossPromoByCategory[category]; !ok {
		category = model.CategoryMultiTopic
	}
	format := answers.Format
	if _, ok := distributionByFormat[format]; !ok {
		format = model.FormatMixed
	}

	return model.GrowthPlan{
		CrossPromoShows:        crossPromoByCategory[category],
		GuestingOpportunities:  guestingByCategory[category],
		DistributionStrategies: distributionByFormat[format],
	}
}

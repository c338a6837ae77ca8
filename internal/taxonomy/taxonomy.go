// Package taxonomy holds the hand-curated keyword tables that map quiz
// answers to industry vocabulary for text-based relevance scoring.
package taxonomy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/wildcast/wildcast/internal/model"
)

// categoryKeywords maps a podcast category to industry keywords that signal
// a relevant sponsor. All entries are lowercase; matching is substring-based.
var categoryKeywords = map[model.PodcastCategory][]string{
	model.CategoryTech: {
		"software", "technology", "computer", "internet", "digital", "mobile",
		"cloud", "data", "hardware", "electronics", "saas", "app", "ai",
		"programming", "it consulting", "search engine", "telecommunications",
		"cybersecurity",
	},
	model.CategoryWellness: {
		"health", "fitness", "wellness", "nutrition", "vitamin", "supplement",
		"personal care", "cosmetic", "beauty", "pharmaceutical", "medical",
		"therapy", "skincare", "skin care", "hair care", "hair growth",
		"grooming", "toiletries", "perfume", "menstrual",
	},
	model.CategoryBusiness: {
		"banking", "financial", "investment", "insurance", "consulting",
		"accounting", "management", "real estate", "credit", "mortgage",
		"brokerage", "asset", "law firm", "service business", "supply chain",
	},
	model.CategoryPopCulture: {
		"entertainment", "media", "broadcasting", "music", "television",
		"radio", "streaming", "social media", "fashion", "apparel", "clothing",
		"shoe", "accessories", "jewelry", "watches", "direct-to-consumer",
	},
	model.CategoryEducation: {
		"education", "training", "learning", "publishing", "academic",
		"school", "university", "non-profit", "nonprofit", "charitable",
		"children", "montessori",
	},
	model.CategoryEntertainment: {
		"entertainment", "gaming", "sports", "broadcasting", "streaming",
		"media", "music", "comedy", "gambling", "events", "sports team",
		"football", "promotions", "video", "television", "radio",
		"video game", "golf",
	},
	model.CategoryMultiTopic: {
		"retailer", "consumer", "food", "beverage", "restaurant",
		"online retailer", "department store", "mass retailer",
		"packaged goods", "home goods", "subscription", "direct-to-consumer",
	},
}

// listenerKeywords maps an audience archetype to the kind of brand vocabulary
// that targets it.
var listenerKeywords = map[model.ListenerType][]string{
	model.ListenerFoundersExecutives: {
		"software", "financial", "consulting", "technology", "investment",
		"management", "banking", "saas", "supply chain", "cybersecurity",
	},
	model.ListenerParentsCaregivers: {
		"consumer", "food", "home", "children", "infant", "family",
		"health care", "packaged goods", "baby", "mother", "toy", "montessori",
	},
	model.ListenerCreatorsInfluencers: {
		"social media", "influencer", "content", "creator", "digital", "app",
		"online retailer", "direct-to-consumer", "fashion", "beauty", "apparel",
	},
	model.ListenerCuriousGeneralists: {
		"education", "media", "entertainment", "publishing", "retailer",
		"consumer", "food", "beverage",
	},
	model.ListenerHealthFitness: {
		"health", "fitness", "wellness", "nutrition", "supplement", "sports",
		"vitamin", "personal care", "grooming", "athletic",
	},
	model.ListenerYoungProfessionals: {
		"financial", "career", "software", "fashion", "apparel", "streaming",
		"subscription", "direct-to-consumer", "fintech",
	},
	model.ListenerHobbyistsDIY: {
		"home goods", "hardware", "craft", "garden", "outdoor", "retailer",
		"tool", "consumer", "hobby", "maker",
	},
}

// Tables is a resolved pair of keyword tables. The zero value is unusable;
// construct via Default or Load.
type Tables struct {
	categories map[model.PodcastCategory][]string
	listeners  map[model.ListenerType][]string
}

// Default returns the built-in tables.
func Default() *Tables {
	return &Tables{categories: categoryKeywords, listeners: listenerKeywords}
}

// overrideFile is the YAML shape accepted by Load.
type overrideFile struct {
	Categories map[string][]string `yaml:"categories"`
	Listeners  map[string][]string `yaml:"listeners"`
}

// Load reads keyword overrides from a YAML file. Keys present in the file
// replace the built-in set for that key; everything else keeps its default.
func Load(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: read override file")
	}

	var of overrideFile
	if err := yaml.Unmarshal(raw, &of); err != nil {
		return nil, eris.Wrap(err, "taxonomy: parse override file")
	}

	t := &Tables{
		categories: make(map[model.PodcastCategory][]string, len(categoryKeywords)),
		listeners:  make(map[model.ListenerType][]string, len(listenerKeywords)),
	}
	for k, v := range categoryKeywords {
		t.categories[k] = v
	}
	for k, v := range listenerKeywords {
		t.listeners[k] = v
	}
	for k, v := range of.Categories {
		t.categories[model.PodcastCategory(k)] = v
	}
	for k, v := range of.Listeners {
		t.listeners[model.ListenerType(k)] = v
	}
	return t, nil
}

// CategoryKeywords returns the keyword set for a category. Unknown or empty
// categories yield an empty set, never an error.
func (t *Tables) CategoryKeywords(c model.PodcastCategory) []string {
	return t.categories[c]
}

// ListenerKeywords returns the keyword set for one listener archetype.
func (t *Tables) ListenerKeywords(lt model.ListenerType) []string {
	return t.listeners[lt]
}

// UnionListenerKeywords unions the keyword sets for all selected listener
// types, de-duplicated, preserving first-seen order.
func (t *Tables) UnionListenerKeywords(types []model.ListenerType) []string {
	if len(types) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, lt := range types {
		for _, kw := range t.listeners[lt] {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

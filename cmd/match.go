package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/wildcast/wildcast/internal/model"
)

var (
	matchCategory  string
	matchListeners []string
	matchAudience  string
	matchLimit     int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank the contact pool against a podcast profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		m, err := buildMatcher(cfg.Matcher)
		if err != nil {
			return eris.Wrap(err, "build matcher")
		}

		contacts, err := st.ListContacts(ctx)
		if err != nil {
			return eris.Wrap(err, "list contacts")
		}

		answers := model.SurveyAnswers{
			Category:     model.PodcastCategory(matchCategory),
			AudienceSize: model.AudienceSize(matchAudience),
		}
		for _, lt := range matchListeners {
			if lt = strings.TrimSpace(lt); lt != "" {
				answers.ListenerType = append(answers.ListenerType, model.ListenerType(lt))
			}
		}

		matches := m.Match(ctx, answers, contacts)
		if matchLimit > 0 && len(matches) > matchLimit {
			matches = matches[:matchLimit]
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d matches\n\n", len(matches))
		for i, match := range matches {
			fmt.Fprintf(out, "%2d. [%3d] %s %s, %s at %s\n", i+1, match.MatchScore,
				match.FirstName, match.LastName, match.Title, match.Company)
			for _, reason := range match.MatchReasons {
				fmt.Fprintf(out, "         - %s\n", reason)
			}
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchCategory, "category", "", "podcast category (tech, wellness, business, pop-culture, education, entertainment, multi-topic)")
	matchCmd.Flags().StringSliceVar(&matchListeners, "listeners", nil, "listener archetypes (comma-separated)")
	matchCmd.Flags().StringVar(&matchAudience, "audience-size", "", "audience size bucket (under-10k, over-10k)")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 20, "max matches to print (0 for all)")
	rootCmd.AddCommand(matchCmd)
}

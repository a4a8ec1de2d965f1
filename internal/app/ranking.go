package app

import (
	"sort"

	"exam-scoring-service/internal/domain"
)

type rankedEntry struct {
	domain.RankEntry
	rank int
}

// rankEntries orders entries by percentage desc, then timeTaken asc, and assigns
// competition ranks: an entry shares the previous rank only when its
// (percentage, timeTaken) pair is identical, otherwise it takes its 1-based position.
func rankEntries(entries []domain.RankEntry) []rankedEntry {
	ranked := make([]rankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = rankedEntry{RankEntry: e}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		if ranked[i].TimeTaken != ranked[j].TimeTaken {
			return ranked[i].TimeTaken < ranked[j].TimeTaken
		}
		// Order within an exact tie does not affect ranks; keep it reproducible.
		return ranked[i].UserID < ranked[j].UserID
	})

	for i := range ranked {
		if i > 0 && sameStanding(ranked[i], ranked[i-1]) {
			ranked[i].rank = ranked[i-1].rank
			continue
		}
		ranked[i].rank = i + 1
	}
	return ranked
}

func sameStanding(a, b rankedEntry) bool {
	return a.Percentage == b.Percentage && a.TimeTaken == b.TimeTaken
}

// summarize projects the ranked sequence into the caller's rank summary.
// ok is false when userID has no entry.
func summarize(ranked []rankedEntry, userID string, leaderboardSize int) (domain.RankSummary, bool) {
	summary := domain.RankSummary{
		TotalParticipants: len(ranked),
		Leaderboard:       make([]domain.LeaderboardEntry, 0, min(leaderboardSize, len(ranked))),
	}

	found := false
	for _, e := range ranked {
		if e.UserID == userID {
			summary.UserRank = e.rank
			summary.UserPercentage = e.Percentage
			found = true
			break
		}
	}

	if len(ranked) > 0 {
		top := ranked[0]
		summary.Topper = &domain.Topper{
			Name:       top.Name,
			Percentage: top.Percentage,
			TimeTaken:  top.TimeTaken,
		}
	}

	for i := 0; i < len(ranked) && i < leaderboardSize; i++ {
		e := ranked[i]
		summary.Leaderboard = append(summary.Leaderboard, domain.LeaderboardEntry{
			Rank:       e.rank,
			UserID:     e.UserID,
			Name:       e.Name,
			Percentage: e.Percentage,
			TimeTaken:  e.TimeTaken,
		})
	}
	return summary, found
}

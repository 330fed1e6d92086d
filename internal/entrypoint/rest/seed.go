package rest

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
)

// Demo-data bounds.
const (
	minSeedProfiles = 2
	maxSeedProfiles = 10
	minSeedPostings = 2
	maxSeedPostings = 8
)

var seedNames = []string{
	"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi",
	"ivan", "judy", "mallory", "oscar", "peggy", "trent", "victor", "wendy",
}

var seedWords = strings.Fields(
	"lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod " +
		"tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam " +
		"quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo")

// SeedDemoData fills the store with a random set of profiles and
// postings so the API has something to show right after startup. Name
// collisions across picks are skipped rather than retried.
func (s *Server) SeedDemoData() {
	n := minSeedProfiles + rand.IntN(maxSeedProfiles-minSeedProfiles)
	seeded := 0
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s%d", seedNames[rand.IntN(len(seedNames))], rand.IntN(100))
		pr, err := s.UC.CreateProfile(name)
		if err != nil {
			continue
		}
		m := minSeedPostings + rand.IntN(maxSeedPostings-minSeedPostings)
		for j := 0; j < m; j++ {
			if _, err := s.UC.AddPosting(pr.ProfileID, seedSentence()); err != nil {
				log.Printf("seed posting for %q: %v", name, err)
			}
		}
		seeded++
	}
	log.Printf("seeded %d demo profiles", seeded)
}

func seedSentence() string {
	n := 5 + rand.IntN(10)
	words := make([]string, n)
	for i := range words {
		words[i] = seedWords[rand.IntN(len(seedWords))]
	}
	return strings.Join(words, " ")
}

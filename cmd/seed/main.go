package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultProfiles  = 3
	defaultPostings  = 4
	defaultWaitLimit = 30 * time.Second
)

type config struct {
	BaseURL   string
	Profiles  int
	Postings  int
	WaitLimit time.Duration
}

var names = []string{
	"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi",
	"ivan", "judy", "mallory", "oscar", "peggy", "trent", "victor", "wendy",
}

var words = strings.Fields(
	"lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod " +
		"tempor incididunt ut labore et dolore magna aliqua")

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WaitLimit)
	defer cancel()

	if err := waitForServer(ctx, cfg.BaseURL); err != nil {
		log.Fatalf("server is not ready: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	created := 0
	for i := 0; i < cfg.Profiles; i++ {
		name := fmt.Sprintf("%s%d", names[rand.IntN(len(names))], rand.IntN(1000))
		profileID, err := createProfile(ctx, client, cfg.BaseURL, name)
		if err != nil {
			log.Printf("create profile %q: %v", name, err)
			continue
		}
		for j := 0; j < cfg.Postings; j++ {
			if err := addPosting(ctx, client, cfg.BaseURL, profileID, sentence()); err != nil {
				log.Printf("add posting for %q: %v", name, err)
			}
		}
		created++
	}

	log.Printf("seed completed: %d profiles with %d postings each", created, cfg.Postings)
}

func loadConfig() config {
	cfg := config{
		BaseURL:   defaultBaseURL,
		Profiles:  defaultProfiles,
		Postings:  defaultPostings,
		WaitLimit: defaultWaitLimit,
	}

	if v, ok := lookupEnv("API_BASE_URL"); ok {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := lookupEnv("SEED_PROFILES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Profiles = n
		}
	}
	if v, ok := lookupEnv("SEED_POSTINGS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Postings = n
		}
	}
	if v, ok := lookupEnv("SEED_WAIT_LIMIT"); ok {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			cfg.WaitLimit = d
		}
	}

	return cfg
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func waitForServer(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	url := fmt.Sprintf("%s/healthz", strings.TrimRight(baseURL, "/"))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func createProfile(ctx context.Context, client *http.Client, baseURL, userName string) (int, error) {
	body := struct {
		UserName string `json:"userName"`
	}{userName}

	resp, err := postJSON(ctx, client, baseURL+"/api/profiles", body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var created struct {
			ProfileID int `json:"profileId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return 0, fmt.Errorf("decode created profile: %w", err)
		}
		return created.ProfileID, nil
	case http.StatusConflict:
		return 0, fmt.Errorf("username %q already taken", userName)
	default:
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
}

func addPosting(ctx context.Context, client *http.Client, baseURL string, profileID int, text string) error {
	body := struct {
		PostingText string `json:"postingText"`
	}{text}

	resp, err := postJSON(ctx, client, fmt.Sprintf("%s/api/profiles/%d/postings", baseURL, profileID), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	return nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func sentence() string {
	n := 5 + rand.IntN(10)
	out := make([]string, n)
	for i := range out {
		out[i] = words[rand.IntN(len(words))]
	}
	return strings.Join(out, " ")
}

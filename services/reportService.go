package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/NoorAlQalb/scoring"
)

const (
	generateContentURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	reportModel        = "gemini-2.0-flash"
)

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ReportService phrases a student's prayer statistics as a narrative
// progress report through the Generative Language API. The engine is
// injected so the service and its callers share one clock.
type ReportService struct {
	engine     *scoring.Engine
	httpClient *http.Client
	apiKey     string
}

var reportService *ReportService

func InitReportService(engine *scoring.Engine) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Println("WARNING: GEMINI_API_KEY not set. Report generation will not be available.")
	}

	reportService = &ReportService{
		engine:     engine,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
	}
}

func GetReportService() *ReportService {
	return reportService
}

// GenerateProgressReport aggregates the student's range statistics and
// asks the model for a mentor-style write-up. No retries: a transport
// or service failure is returned to the caller as-is.
func (s *ReportService) GenerateProgressReport(ctx context.Context, studentName string, records scoring.RecordSet, startKey, endKey string, forAdmin bool) (string, error) {
	if s == nil || s.apiKey == "" {
		return "", fmt.Errorf("report service not configured")
	}

	stats, err := s.engine.RangeStats(records, startKey, endKey)
	if err != nil {
		return "", err
	}

	prompt := buildReportPrompt(studentName, startKey, endKey, stats, forAdmin)

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal report request: %w", err)
	}

	url := fmt.Sprintf(generateContentURL, reportModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call report service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("report service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode report response: %w", err)
	}

	var text strings.Builder
	for _, candidate := range decoded.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
		}
		break
	}
	if text.Len() == 0 {
		return "No report generated.", nil
	}
	return text.String(), nil
}

func buildReportPrompt(studentName, startKey, endKey string, stats scoring.RangeStats, forAdmin bool) string {
	var breakdown strings.Builder
	for _, p := range scoring.PrayerOrder {
		counts := stats.ByPrayer[p]
		fmt.Fprintf(&breakdown, "- **%s** (%s): On time (%d), Late (%d), Missed (%d)\n",
			scoring.ArabicNames[p], p, counts.OnTime, counts.Late, counts.Missed)
	}

	maxWords := 200
	audience := ""
	if forAdmin {
		maxWords = 300
		audience = "(This report is for the teacher/admin view)"
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, `You are a compassionate and wise spiritual mentor for students.
Student Name: %s
Period: %s to %s
%s

Overall Summary:
- Total Prayers On Time: %d
- Total Prayers Late: %d
- Total Prayers Missed: %d

Detailed Breakdown by Prayer:
%s
Please generate a comprehensive spiritual progress report (max %d words).

Structure:
`, studentName, startKey, endKey, audience,
		stats.Total.OnTime, stats.Total.Late, stats.Total.Missed,
		breakdown.String(), maxWords)

	section := 1
	if forAdmin {
		fmt.Fprintf(&prompt, "%d. **Statistical Breakdown**: Create a bulleted list showing the on-time, late and missed counts for each prayer based on the provided breakdown.\n", section)
		section++
	}
	fmt.Fprintf(&prompt, "%d. **Detailed Analysis**: Discuss their performance. Mention which prayers they maintain well and which ones (e.g. Fajr or Isha) they struggle with.\n", section)
	section++
	fmt.Fprintf(&prompt, "%d. **Specific Advice**: Provide targeted advice based on their weak points (e.g. if Fajr is missed often, suggest sleeping earlier).\n", section)
	section++
	fmt.Fprintf(&prompt, "%d. **Encouragement**: End with a motivating dua or quote (in English) relevant to consistency.\n\n", section)
	prompt.WriteString("Tone: Gentle, inspiring, non-judgmental, and constructive.\n")

	return prompt.String()
}

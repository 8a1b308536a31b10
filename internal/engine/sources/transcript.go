package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// YouTube transcript fetching.
// Primary:   scrape watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback:  /next → engagement panel → /get_transcript  (works from datacenter IPs)
// Fallback:  ANDROID Innertube /player → captionTracks
// Last:      yt-dlp subtitle download

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments extracts plain text from a /get_transcript JSON response.
func parseTranscriptSegments(resp ytGetTranscriptResp) string {
	var sb strings.Builder
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			if seg.TranscriptSegmentRenderer == nil {
				continue
			}
			for _, run := range seg.TranscriptSegmentRenderer.Snippet.Runs {
				if run.Text != "" {
					if sb.Len() > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(run.Text)
				}
			}
		}
	}
	return sb.String()
}

// fetchViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
func fetchViaEngagementPanel(ctx context.Context, videoID string) (string, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTubeWEB(ctx, ytGetTranscriptURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            "en",
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	text := parseTranscriptSegments(transcriptResp)
	if text == "" {
		return "", errors.New("empty transcript segments")
	}
	return text, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Skips tracks that require PoToken — those only work in a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL,
// returning both the joined text and the timed cues.
func fetchTimedText(ctx context.Context, baseURL string) (string, []engine.TimedSegment, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return "", nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", nil, err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	timed := make([]engine.TimedSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanHTML(line.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		timed = append(timed, engine.TimedSegment{Start: line.Start, Dur: line.Dur, Text: text})
	}
	return sb.String(), timed, nil
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
func fetchViaPlayer(ctx context.Context, videoID string, langs []string) (engine.TranscriptResult, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return engine.TranscriptResult{}, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return engine.TranscriptResult{}, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return engine.TranscriptResult{}, fmt.Errorf("decode player: %w", err)
	}
	return transcriptFromPlayerResp(ctx, playerResp, langs, "player")
}

func transcriptFromPlayerResp(ctx context.Context, playerResp innertubePlayerResp, langs []string, source string) (engine.TranscriptResult, error) {
	if playerResp.Captions == nil {
		reason := ""
		if playerResp.PlayabilityStatus != nil {
			reason = playerResp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return engine.TranscriptResult{}, fmt.Errorf("captions unavailable: %s", reason)
		}
		return engine.TranscriptResult{}, errors.New("no captions in player response")
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return engine.TranscriptResult{}, errors.New("no caption tracks")
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return engine.TranscriptResult{}, errors.New("all caption tracks require PoToken")
	}
	text, timed, err := fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return engine.TranscriptResult{}, err
	}
	return engine.TranscriptResult{
		Best:   text,
		Lang:   track.LanguageCode,
		Source: source,
		Timed:  timed,
	}, nil
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// fetchViaPageScrape scrapes the YouTube watch page HTML and extracts the
// caption track XML URL from ytInitialPlayerResponse. Works from any IP.
func fetchViaPageScrape(ctx context.Context, videoID string, langs []string) (engine.TranscriptResult, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return engine.TranscriptResult{}, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return engine.TranscriptResult{}, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return engine.TranscriptResult{}, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return engine.TranscriptResult{}, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return engine.TranscriptResult{}, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return transcriptFromPlayerResp(ctx, playerResp, langs, "page_scrape")
}

// iso3to1 maps the detector's ISO 639-3 output onto the two-letter tags the
// rest of the system uses. Unmapped languages pass through as-is.
var iso3to1 = map[string]string{
	"kor": "ko", "eng": "en", "jpn": "ja", "cmn": "zh",
	"spa": "es", "fra": "fr", "deu": "de", "rus": "ru",
	"por": "pt", "vie": "vi", "ind": "id", "tha": "th",
}

// DetectLang guesses a two-letter language tag for text.
func DetectLang(text string) string {
	info := whatlanggo.Detect(text)
	code := whatlanggo.LangToString(info.Lang)
	if two, ok := iso3to1[code]; ok {
		return two
	}
	return code
}

// FetchTranscript fetches the transcript for a YouTube video, trying each
// path in order of reliability. The result's language tag is detected from
// the text when the winning path does not report one.
func FetchTranscript(ctx context.Context, videoID string, langs []string) (engine.TranscriptResult, error) {
	engine.IncrTranscriptRequests()
	if len(langs) == 0 {
		langs = engine.Cfg.TranscriptLangs
	}

	if res, err := fetchViaPageScrape(ctx, videoID, langs); err == nil {
		return res, nil
	} else {
		slog.Warn("youtube: page scrape failed, trying engagement panel",
			slog.String("id", videoID), slog.Any("err", err))
	}

	if text, err := fetchViaEngagementPanel(ctx, videoID); err == nil {
		return engine.TranscriptResult{
			Best:   text,
			Lang:   DetectLang(text),
			Source: "engagement_panel",
		}, nil
	} else {
		slog.Warn("youtube: engagement panel failed, trying player",
			slog.String("id", videoID), slog.Any("err", err))
	}

	if res, err := fetchViaPlayer(ctx, videoID, langs); err == nil {
		return res, nil
	} else {
		slog.Warn("youtube: player failed, trying yt-dlp",
			slog.String("id", videoID), slog.Any("err", err))
	}

	res, err := fetchTranscriptYtDlp(ctx, videoID, langs)
	if err != nil {
		engine.IncrTranscriptErrors()
		return engine.TranscriptResult{}, fmt.Errorf("transcript unavailable for %s: %w", videoID, err)
	}
	return res, nil
}

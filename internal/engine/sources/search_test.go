package sources

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v after other params", "https://www.youtube.com/watch?list=PLabc&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"trailing params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"too short", "short", ""},
		{"11 chars with slash", "abc/def.ghi", ""},
		{"random text", "not a video reference", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.ref); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestVideosFromInitialData(t *testing.T) {
	data := []byte(`{"contents":[
		{"videoRenderer":{
			"videoId":"AAAAAAAAAAA",
			"title":{"runs":[{"text":"First video"}]},
			"ownerText":{"runs":[{"text":"Some Channel"}]},
			"descriptionSnippet":{"runs":[{"text":"part one "},{"text":"part two"}]}}},
		{"videoRenderer":{
			"videoId":"BBBBBBBBBBB",
			"title":{"runs":[{"text":"Second video"}]}}},
		{"videoRenderer":{"videoId":"CCCCCCCCCCC"}}
	]}`)

	results := videosFromInitialData(data, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	first := results[0]
	if first.ID != "AAAAAAAAAAA" {
		t.Errorf("first.ID = %q", first.ID)
	}
	if first.Title != "First video" {
		t.Errorf("first.Title = %q", first.Title)
	}
	if first.Channel != "Some Channel" {
		t.Errorf("first.Channel = %q", first.Channel)
	}
	if first.Snippet != "part one part two" {
		t.Errorf("first.Snippet = %q", first.Snippet)
	}
	if first.URL != "https://www.youtube.com/watch?v=AAAAAAAAAAA" {
		t.Errorf("first.URL = %q", first.URL)
	}
	if results[1].ID != "BBBBBBBBBBB" {
		t.Errorf("second.ID = %q", results[1].ID)
	}
}

func TestVideosFromInitialDataNoRenderers(t *testing.T) {
	if got := videosFromInitialData([]byte(`{"contents":[{"other":{}}]}`), 5); len(got) != 0 {
		t.Errorf("expected no results, got %+v", got)
	}
}

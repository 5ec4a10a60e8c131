package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchChannelStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Errorf("path = %s, want /channels", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("part") != "statistics" || q.Get("id") != "chan-1" || q.Get("key") != "key-1" {
			t.Errorf("unexpected query: %v", q)
		}
		io.WriteString(w, `{"items":[{"statistics":{"subscriberCount":"1532","videoCount":"48","viewCount":"2400000"}}]}`)
	}))
	defer ts.Close()

	c := NewClient("key-1", "chan-1", "")
	c.BaseURL = ts.URL

	stats, err := c.FetchChannelStats(context.Background())
	if err != nil {
		t.Fatalf("FetchChannelStats: %v", err)
	}
	if stats.SubscriberCount != "1532" || stats.VideoCount != "48" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFetchChannelStatsUnknownChannel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"items":[]}`)
	}))
	defer ts.Close()

	c := NewClient("key-1", "nope", "")
	c.BaseURL = ts.URL

	stats, err := c.FetchChannelStats(context.Background())
	if err != nil {
		t.Fatalf("FetchChannelStats: %v", err)
	}
	if stats != nil {
		t.Errorf("stats = %+v, want nil for an unknown channel", stats)
	}
}

func TestUploadVideo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart: %v", err)
		}

		var meta uploadRequest
		if err := json.Unmarshal([]byte(r.FormValue("metadata")), &meta); err != nil {
			t.Fatalf("decoding metadata: %v", err)
		}
		if meta.Snippet.Title != "My Video" || meta.Status.PrivacyStatus != "unlisted" {
			t.Errorf("metadata = %+v", meta)
		}

		file, _, err := r.FormFile("video")
		if err != nil {
			t.Fatalf("missing video part: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "fake video bytes" {
			t.Errorf("video part = %q", data)
		}

		io.WriteString(w, `{"id":"vid-123"}`)
	}))
	defer ts.Close()

	c := NewClient("", "", "tok")
	c.UploadURL = ts.URL

	id, err := c.UploadVideo(context.Background(), strings.NewReader("fake video bytes"), VideoMetadata{
		Title:         "My Video",
		Description:   "desc",
		Tags:          []string{"a", "b"},
		CategoryID:    "22",
		PrivacyStatus: "unlisted",
	})
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if id != "vid-123" {
		t.Errorf("id = %q, want vid-123", id)
	}
}

func TestUploadVideoNeedsToken(t *testing.T) {
	c := NewClient("", "", "")
	if _, err := c.UploadVideo(context.Background(), strings.NewReader("x"), VideoMetadata{}); err == nil {
		t.Error("upload without a token should fail")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0", "0"},
		{"999", "999"},
		{"1532", "1.5K"},
		{"2400000", "2.4M"},
		{"not-a-number", "not-a-number"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

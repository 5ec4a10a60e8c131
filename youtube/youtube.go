// Package youtube is the adapter for the video host. It covers the two calls
// the site needs: public channel statistics and an authorized video upload.
// Token acquisition is the identity provider's business; the client is handed
// a ready access token.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
const DefaultUploadURL = "https://www.googleapis.com/upload/youtube/v3"

type Client struct {
	BaseURL     string
	UploadURL   string
	APIKey      string
	ChannelID   string
	AccessToken string
	HTTPClient  *http.Client
}

func NewClient(apiKey, channelID, accessToken string) *Client {
	return &Client{
		BaseURL:     DefaultBaseURL,
		UploadURL:   DefaultUploadURL,
		APIKey:      apiKey,
		ChannelID:   channelID,
		AccessToken: accessToken,
		HTTPClient:  &http.Client{},
	}
}

// ChannelStats is the statistics block of the channels endpoint. Counts come
// back as decimal strings, as the API sends them.
type ChannelStats struct {
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
	ViewCount       string `json:"viewCount"`
}

type channelListResponse struct {
	Items []struct {
		Statistics ChannelStats `json:"statistics"`
	} `json:"items"`
}

// FetchChannelStats returns the configured channel's public statistics, or
// nil when the channel is unknown.
func (c *Client) FetchChannelStats(ctx context.Context) (*ChannelStats, error) {
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", c.ChannelID)
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/channels?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube API error: %d", resp.StatusCode)
	}

	var data channelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return nil, nil
	}
	return &data.Items[0].Statistics, nil
}

type VideoMetadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

type uploadRequest struct {
	Snippet struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		CategoryID  string   `json:"categoryId"`
	} `json:"snippet"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
}

// UploadVideo sends the video as a multipart upload and returns the id the
// host assigned to it.
func (c *Client) UploadVideo(ctx context.Context, video io.Reader, meta VideoMetadata) (string, error) {
	if c.AccessToken == "" {
		return "", fmt.Errorf("access token not available")
	}

	var payload uploadRequest
	payload.Snippet.Title = meta.Title
	payload.Snippet.Description = meta.Description
	payload.Snippet.Tags = meta.Tags
	payload.Snippet.CategoryID = meta.CategoryID
	payload.Status.PrivacyStatus = meta.PrivacyStatus

	metadata, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormField("metadata")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(metadata); err != nil {
		return "", err
	}

	part, err = mw.CreateFormFile("video", "video")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, video); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	uploadURL := c.UploadURL + "/videos?uploadType=multipart&part=snippet,status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// FormatCount renders a raw count string the way the site displays it:
// 1532 -> "1.5K", 2400000 -> "2.4M".
func FormatCount(count string) string {
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return count
	}
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

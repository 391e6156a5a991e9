/*
DESCRIPTION
  client.go provides a Recognizer backed by a Plate Recognizer compatible
  HTTP API.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package plate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Recognizer reads the licence plate in an image. It returns an empty
// string when the image holds no readable plate.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Client posts images to a plate reader endpoint.
type Client struct {
	url     string
	token   string
	regions []string
	http    *http.Client
}

// NewClient returns a Client for the endpoint at url, authenticating with
// token and hinting the given plate regions, e.g. "us-ia".
func NewClient(url, token string, regions ...string) *Client {
	return &Client{
		url:     url,
		token:   token,
		regions: regions,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type response struct {
	Results []struct {
		Plate string  `json:"plate"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// Recognize uploads the image at path and returns the first plate found,
// in upper case.
func (c *Client) Recognize(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open image: %w", err)
	}
	defer f.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for _, r := range c.regions {
		err = w.WriteField("regions", r)
		if err != nil {
			return "", fmt.Errorf("could not write regions field: %w", err)
		}
	}
	fw, err := w.CreateFormFile("upload", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("could not create upload field: %w", err)
	}
	_, err = io.Copy(fw, f)
	if err != nil {
		return "", fmt.Errorf("could not copy image: %w", err)
	}
	err = w.Close()
	if err != nil {
		return "", fmt.Errorf("could not close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &b)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not post image: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("plate reader returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var r response
	err = json.Unmarshal(body, &r)
	if err != nil {
		return "", fmt.Errorf("could not parse response: %w", err)
	}
	if len(r.Results) == 0 {
		return "", nil
	}
	return strings.ToUpper(r.Results[0].Plate), nil
}

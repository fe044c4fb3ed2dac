package tts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// SynthesizeEndpoint is the Google Cloud Text-to-Speech REST endpoint.
const SynthesizeEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// audioEncoding is fixed; the decoder only understands linear PCM WAV.
const audioEncoding = "LINEAR16"

// Client issues synthesis requests over HTTP. It makes exactly one attempt
// per call; retrying is the caller's policy decision, and sayline's policy
// is to not retry.
type Client struct {
	httpClient *http.Client
	endpoint   string
	maxBytes   int64
}

// NewClient creates a Client with the given round-trip timeout and
// response size cap.
func NewClient(timeout time.Duration, maxResponseBytes int64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   SynthesizeEndpoint,
		maxBytes:   maxResponseBytes,
	}
}

type synthesizeBody struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

// Synthesize posts the request to the provider and returns the decoded
// field mapping. Transport failures (including non-2xx statuses and
// timeouts) return ErrTransport; a body that cannot be parsed as a field
// mapping returns ErrResponseDecode.
func (c *Client) Synthesize(req SynthesisRequest, token string) (SynthesisResponse, error) {
	var body synthesizeBody
	body.Input.Text = req.Text
	body.Voice.LanguageCode = req.LanguageCode
	body.Voice.Name = req.VoiceName
	body.AudioConfig.AudioEncoding = audioEncoding

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	httpReq.Header.Set("X-goog-api-key", token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Debug("sending synthesis request",
		"endpoint", c.endpoint,
		"language", req.LanguageCode,
		"voice", req.VoiceName,
		"textLen", len(req.Text))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %s", ErrTransport, resp.Status)
	}

	var fields SynthesisResponse
	dec := json.NewDecoder(http.MaxBytesReader(nil, resp.Body, c.maxBytes))
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseDecode, err)
	}

	if content, ok := fields["audioContent"]; ok {
		log.Debug("synthesis response received",
			"audioContent", humanize.Bytes(uint64(len(content))))
	}
	return fields, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

const defaultTimeout = 15 * time.Second

// HTTPTransport talks to the v1 API.
type HTTPTransport struct {
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
}

type HTTPOption func(*HTTPTransport)

// WithHTTPClient replaces the default client, e.g. to change its timeout.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) { t.client = c }
}

// WithUserAgent must match the user agent the token was issued to.
func WithUserAgent(ua string) HTTPOption {
	return func(t *HTTPTransport) { t.userAgent = ua }
}

// NewHTTPTransport expects baseURL to include the version prefix, e.g.
// http://localhost:8080/api/v1.
func NewHTTPTransport(baseURL, token string, opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *HTTPTransport) Participants(ctx context.Context, eventID uint) ([]ParticipantOption, error) {
	var resp response.ParticipantsResponse
	if _, err := t.do(ctx, http.MethodGet, eventPath(eventID, "participants"), nil, &resp); err != nil {
		return nil, err
	}

	options := make([]ParticipantOption, len(resp.Participants))
	for i, c := range resp.Participants {
		options[i] = ParticipantOption{
			ID:       c.ParticipantID,
			Name:     c.Name,
			Eligible: c.Eligibility.Eligible,
			Reasons:  c.Eligibility.Reasons,
			Status:   c.Status,
		}
	}

	return options, nil
}

func (t *HTTPTransport) Occurrences(ctx context.Context, eventID uint) ([]OccurrenceOption, bool, error) {
	var resp response.OccurrencesResponse
	if _, err := t.do(ctx, http.MethodGet, eventPath(eventID, "occurrences")+"?include_past=true", nil, &resp); err != nil {
		return nil, false, err
	}

	options := make([]OccurrenceOption, len(resp.Occurrences))
	for i, o := range resp.Occurrences {
		options[i] = OccurrenceOption{ID: o.ID, Label: o.Label, Past: o.IsPast}
	}

	return options, resp.RequireOccurrenceSelection, nil
}

func (t *HTTPTransport) Register(ctx context.Context, req RegisterRequest) (RegisterOutcome, error) {
	body := request.RegisterRequest{
		ParticipantID: req.ParticipantID,
		Delivery:      string(req.Delivery),
	}
	if req.Note != "" {
		body.Note = &req.Note
	}
	if len(req.Occurrences) > 0 {
		body.Occurrences = req.Occurrences
	} else {
		body.AllOccurrences = true
	}

	var raw json.RawMessage
	status, err := t.do(ctx, http.MethodPost, eventPath(req.EventID, "registrations"), body, &raw)
	if err != nil {
		return RegisterOutcome{}, err
	}

	if status == http.StatusOK {
		var updated response.UpdateResponse
		if err := json.Unmarshal(raw, &updated); err != nil {
			return RegisterOutcome{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}

		return RegisterOutcome{
			RegistrationID: updated.RegistrationID,
			Status:         updated.Status,
			Message:        updated.Message,
			Updated:        true,
		}, nil
	}

	var created response.RegisterResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return RegisterOutcome{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	outcome := RegisterOutcome{
		RegistrationID:    created.RegistrationID,
		Status:            domain.RegistrationStatus(created.Disposition),
		Message:           created.Message,
		PaymentError:      created.PaymentError,
		PaymentEmailError: created.PaymentEmailError,
	}
	if p := created.Payment; p != nil {
		outcome.Payment = &Payment{
			CheckoutURL:     p.CheckoutURL,
			AmountLabel:     p.AmountLabel,
			OccurrenceCount: p.OccurrenceCount,
			Delivery:        p.Delivery,
			Sent:            p.Sent,
		}
	}

	return outcome, nil
}

func (t *HTTPTransport) Unregister(ctx context.Context, eventID, participantID uint) (string, error) {
	var resp response.UnregisterResponse
	path := eventPath(eventID, "registrations") + "/" + strconv.FormatUint(uint64(participantID), 10)
	if _, err := t.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

func eventPath(eventID uint, resource string) string {
	return "/events/" + strconv.FormatUint(uint64(eventID), 10) + "/" + resource
}

// do sends body as JSON and decodes a 2xx answer into out. Any other status
// becomes a *TransportError.
func (t *HTTPTransport) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("json.Marshal -> %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("t.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("io.ReadAll -> %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		transportErr := &TransportError{StatusCode: resp.StatusCode}
		var apiErr response.Err
		if json.Unmarshal(data, &apiErr) == nil {
			transportErr.Code = apiErr.ErrorCode
			transportErr.Message = apiErr.Message
		}

		return resp.StatusCode, transportErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	return resp.StatusCode, nil
}

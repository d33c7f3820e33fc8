package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error carries the structured detail the service attaches to failed
// requests.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Client wraps outbound calls to the prediction service behind one base
// address. An interceptor, when set, sees every request before it is sent;
// main wires it to attach the session's bearer token.
type Client struct {
	baseURL     string
	httpc       *http.Client
	interceptor func(*http.Request)
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetInterceptor(fn func(*http.Request)) {
	c.interceptor = fn
}

// Login exchanges credentials for an access token. The auth endpoint takes
// form fields, not JSON.
func (c *Client) Login(username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out loginResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response missing access token")
	}
	return out.AccessToken, nil
}

// CreatePrediction submits one measurement and returns the stored record. A
// fresh idempotency key is attached per call so a double-submitted form
// cannot create two records.
func (c *Client) CreatePrediction(in MeasurementIn) (*MeasurementOut, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	var out MeasurementOut
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPredictions fetches the measurement history, newest first. limit <= 0
// leaves the server default in place.
func (c *Client) ListPredictions(limit int) ([]MeasurementOut, error) {
	endpoint := c.baseURL + "/predictions"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out []MeasurementOut
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	if c.interceptor != nil {
		c.interceptor(req)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			apiErr.Detail = payload.Detail
			return apiErr
		}
	}

	apiErr.Detail = http.StatusText(resp.StatusCode)
	if apiErr.Detail == "" {
		apiErr.Detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return apiErr
}

package client

// http_client.go = talks to the Musify HTTP API on behalf of the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"musify/internal/microservices/http-api/dto"
)

// APIError is a non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close() // Ensure the response body is closed

	if response.StatusCode != wantStatus {
		return decodeAPIError(response)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}

func decodeAPIError(response *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil || payload.Error == "" {
		payload.Error = "request failed"
	}
	return &APIError{StatusCode: response.StatusCode, Message: payload.Error}
}

// Auth

func (c *HTTPClient) SignUp(ctx context.Context, request *dto.SignUpRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-up", request, &result, http.StatusCreated); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, request *dto.SignInRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-in", request, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

// Albums

func (c *HTTPClient) ListAlbums(ctx context.Context) ([]dto.AlbumResponse, error) {
	var result []dto.AlbumResponse
	if err := c.do(ctx, http.MethodGet, "/api/albums", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) GetAlbum(ctx context.Context, albumID int64) (*dto.AlbumResponse, error) {
	var result dto.AlbumResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/albums/%d", albumID), nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListAlbumReviews(ctx context.Context, albumID int64) ([]dto.ReviewResponse, error) {
	var result []dto.ReviewResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/albums/%d/reviews", albumID), nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) CreateAlbum(ctx context.Context, request *dto.AlbumRequest) (*dto.AlbumResponse, error) {
	var result dto.AlbumResponse
	if err := c.do(ctx, http.MethodPost, "/api/albums", request, &result, http.StatusCreated); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateAlbum(ctx context.Context, albumID int64, request *dto.AlbumRequest) (*dto.AlbumResponse, error) {
	var result dto.AlbumResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/albums/%d", albumID), request, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteAlbum(ctx context.Context, albumID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/albums/%d", albumID), nil, nil, http.StatusOK)
}

// Reviews

func (c *HTTPClient) CreateReview(ctx context.Context, request *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/reviews", request, &result, http.StatusCreated); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetReview(ctx context.Context, reviewID int64) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/%d", reviewID), nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, reviewID int64, request *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), request, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", reviewID), nil, nil, http.StatusNoContent)
}

// Users

func (c *HTTPClient) GetMe(ctx context.Context) (*dto.ProfileResponse, error) {
	var result dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, userID string, request *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/"+userID, request, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+userID, nil, nil, http.StatusNoContent)
}

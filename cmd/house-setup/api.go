package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// apiClient talks to the houses API on behalf of the wizard.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *apiClient) post(path, token string, payload interface{}) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("unexpected response (%d)", resp.StatusCode)
	}
	if !result.Success {
		if result.Error == "" {
			result.Error = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", result.Error)
	}
	return &result, nil
}

func (c *apiClient) login(email, password string) (string, error) {
	res, err := c.post("/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", fmt.Errorf("login returned no token")
	}
	return res.Token, nil
}

type createdHouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *apiClient) createHouse(token string, house map[string]string) (*createdHouse, error) {
	res, err := c.post("/api/v1/houses", token, house)
	if err != nil {
		return nil, err
	}
	var h createdHouse
	if err := json.Unmarshal(res.Data, &h); err != nil {
		return nil, fmt.Errorf("decode house: %w", err)
	}
	return &h, nil
}

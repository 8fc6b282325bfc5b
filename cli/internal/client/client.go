package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "prctl/0.1.0"

// Client talks to the records service API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"nome"`
	Username    string   `json:"usuario"`
	Role        string   `json:"role"`
	Rank        string   `json:"patente"`
	Permissions []string `json:"permissoes"`
	Active      bool     `json:"ativo"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	User      *User  `json:"user"`
}

type WantedPerson struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Crimes      string  `json:"crimes"`
	DangerLevel int     `json:"nivel_perigo"`
	Bounty      float64 `json:"recompensa"`
	Status      string  `json:"status"`
}

type Arrest struct {
	ID          string  `json:"id"`
	CitizenName string  `json:"nome_cidadao"`
	Charges     string  `json:"acusacoes"`
	SentenceMin int     `json:"pena_minutos"`
	FineAmount  float64 `json:"valor_multa"`
}

type Fine struct {
	ID          string  `json:"id"`
	CitizenName string  `json:"nome_cidadao"`
	Plate       string  `json:"placa,omitempty"`
	Violation   string  `json:"infracao"`
	Amount      float64 `json:"valor"`
}

type listEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	// The server recognizes prctl and tags audit entries as CLI-made.
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e apiError
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s (status %d)", e.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) list(path string, out interface{}) (int, error) {
	var env listEnvelope
	if err := c.do(http.MethodGet, path, nil, &env); err != nil {
		return 0, err
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return 0, err
	}
	return env.Total, nil
}

func (c *Client) Login(username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(http.MethodPost, "/api/login", map[string]string{
		"login":    username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me() (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers() ([]User, int, error) {
	var users []User
	total, err := c.list("/api/usuarios?limit=100", &users)
	return users, total, err
}

type CreateUserInput struct {
	Name        string   `json:"nome"`
	Username    string   `json:"usuario"`
	Password    string   `json:"password"`
	Rank        string   `json:"patente,omitempty"`
	Permissions []string `json:"permissoes,omitempty"`
}

func (c *Client) CreateUser(input *CreateUserInput) (*User, error) {
	var user User
	if err := c.do(http.MethodPost, "/api/usuarios", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListWanted(status string) ([]WantedPerson, int, error) {
	path := "/api/procurados?limit=100"
	if status != "" {
		path += "&status=" + url.QueryEscape(status)
	}
	var wanted []WantedPerson
	total, err := c.list(path, &wanted)
	return wanted, total, err
}

type CreateWantedInput struct {
	Name        string  `json:"nome"`
	Crimes      string  `json:"crimes"`
	DangerLevel int     `json:"nivel_perigo"`
	Bounty      float64 `json:"recompensa"`
}

func (c *Client) CreateWanted(input *CreateWantedInput) (*WantedPerson, error) {
	var wanted WantedPerson
	if err := c.do(http.MethodPost, "/api/procurados", input, &wanted); err != nil {
		return nil, err
	}
	return &wanted, nil
}

func (c *Client) CaptureWanted(id string) (*WantedPerson, error) {
	var wanted WantedPerson
	if err := c.do(http.MethodPost, "/api/procurados/"+url.PathEscape(id)+"/capturar", nil, &wanted); err != nil {
		return nil, err
	}
	return &wanted, nil
}

type CreateArrestInput struct {
	CitizenName string  `json:"nome_cidadao"`
	Charges     string  `json:"acusacoes"`
	SentenceMin int     `json:"pena_minutos"`
	FineAmount  float64 `json:"valor_multa"`
}

func (c *Client) CreateArrest(input *CreateArrestInput) (*Arrest, error) {
	var arrest Arrest
	if err := c.do(http.MethodPost, "/api/prisoes", input, &arrest); err != nil {
		return nil, err
	}
	return &arrest, nil
}

type CreateFineInput struct {
	CitizenName string  `json:"nome_cidadao"`
	Plate       string  `json:"placa,omitempty"`
	Violation   string  `json:"infracao"`
	Amount      float64 `json:"valor"`
}

func (c *Client) CreateFine(input *CreateFineInput) (*Fine, error) {
	var fine Fine
	if err := c.do(http.MethodPost, "/api/multas", input, &fine); err != nil {
		return nil, err
	}
	return &fine, nil
}

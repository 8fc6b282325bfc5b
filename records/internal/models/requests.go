package models

type LoginRequest struct {
	Username string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	User      *User  `json:"user"`
}

type CreateUserRequest struct {
	Name        string   `json:"nome"`
	Username    string   `json:"usuario"`
	Password    string   `json:"password"`
	Role        string   `json:"role,omitempty"`
	Rank        string   `json:"patente,omitempty"`
	Permissions []string `json:"permissoes,omitempty"`
}

type UpdateUserRequest struct {
	Name        *string   `json:"nome,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Rank        *string   `json:"patente,omitempty"`
	Permissions *[]string `json:"permissoes,omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type CreateArrestRequest struct {
	CitizenName string  `json:"nome_cidadao"`
	CitizenRG   string  `json:"rg_cidadao,omitempty"`
	Charges     string  `json:"acusacoes"`
	SentenceMin int     `json:"pena_minutos"`
	FineAmount  float64 `json:"valor_multa"`
	Notes       string  `json:"observacoes,omitempty"`
	MugshotPath string  `json:"foto,omitempty"`
}

type CreateWantedRequest struct {
	Name        string  `json:"nome"`
	Crimes      string  `json:"crimes"`
	DangerLevel int     `json:"nivel_perigo"`
	Bounty      float64 `json:"recompensa"`
	PhotoPath   string  `json:"foto,omitempty"`
}

type CreateReportRequest struct {
	Title        string `json:"titulo"`
	Description  string `json:"descricao"`
	Location     string `json:"local,omitempty"`
	ReporterName string `json:"nome_declarante,omitempty"`
}

type CreateInvestigationRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	LeadOfficer string `json:"oficial_responsavel,omitempty"`
}

type AddEvidenceRequest struct {
	Description string `json:"descricao"`
	PhotoPath   string `json:"foto,omitempty"`
}

type CreateFineRequest struct {
	CitizenName string  `json:"nome_cidadao"`
	Plate       string  `json:"placa,omitempty"`
	Violation   string  `json:"infracao"`
	Amount      float64 `json:"valor"`
}

type CreateSeizureRequest struct {
	Item        string `json:"item"`
	Reason      string `json:"motivo"`
	CitizenName string `json:"nome_cidadao,omitempty"`
}

type CreateAssetRequest struct {
	Name     string  `json:"nome"`
	Category string  `json:"categoria"`
	Value    float64 `json:"valor"`
}

type UpdateAssetRequest struct {
	Name   *string  `json:"nome,omitempty"`
	Value  *float64 `json:"valor,omitempty"`
	Status *string  `json:"status,omitempty"`
}

type CreateNewsRequest struct {
	Title     string `json:"titulo"`
	Body      string `json:"corpo"`
	Published bool   `json:"publicado"`
}

type CreateLicenseRequest struct {
	CitizenName   string `json:"nome_cidadao"`
	CitizenRG     string `json:"rg_cidadao"`
	Phone         string `json:"telefone,omitempty"`
	WeaponType    string `json:"tipo_arma"`
	Justification string `json:"justificativa"`
}

type SubmitQuizRequest struct {
	CandidateName string `json:"nome_candidato"`
	Answers       []int  `json:"respostas"`
}

// ListRecordsRequest holds the common query parameters for list
// endpoints (fixed newest-first ordering, optional status filter).
type ListRecordsRequest struct {
	Page   int
	Limit  int
	Status string
}

// ListResponse wraps a page of records with pagination metadata.
type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

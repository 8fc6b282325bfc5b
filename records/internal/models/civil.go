package models

import "time"

// Fine is a traffic fine issued against a citizen or vehicle.
type Fine struct {
	ID          string    `json:"id"`
	CitizenName string    `json:"nome_cidadao"`
	Plate       string    `json:"placa,omitempty"`
	Violation   string    `json:"infracao"`
	Amount      float64   `json:"valor"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Seizure records property confiscated during an operation.
type Seizure struct {
	ID          string    `json:"id"`
	Item        string    `json:"item"`
	Reason      string    `json:"motivo"`
	CitizenName string    `json:"nome_cidadao,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Asset status values.
const (
	AssetStatusActive   = "ativo"
	AssetStatusInactive = "baixado"
)

// Asset is a department-owned item tracked for accounting
// (vehicles, weapons, equipment).
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Category  string    `json:"categoria"`
	Value     float64   `json:"valor"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsPost is an announcement; published posts appear on the
// public site.
type NewsPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"titulo"`
	Body      string    `json:"corpo"`
	Author    string    `json:"autor"`
	Published bool      `json:"publicado"`
	CreatedAt time.Time `json:"created_at"`
}

// Weapons-license request status values.
const (
	LicenseStatusPending  = "pendente"
	LicenseStatusApproved = "aprovado"
	LicenseStatusDenied   = "negado"
)

// LicenseRequest is a weapons-license application submitted through
// the public form and reviewed by staff.
type LicenseRequest struct {
	ID            string     `json:"id"`
	CitizenName   string     `json:"nome_cidadao"`
	CitizenRG     string     `json:"rg_cidadao"`
	Phone         string     `json:"telefone,omitempty"`
	WeaponType    string     `json:"tipo_arma"`
	Justification string     `json:"justificativa"`
	Status        string     `json:"status"`
	ReviewedBy    *string    `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// QuizQuestion is a recruitment quiz question served on the public
// site. The correct answer index is never serialized.
type QuizQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"pergunta"`
	Options []string `json:"opcoes"`
	Correct int      `json:"-"`
}

// QuizSubmission is a graded recruitment quiz attempt.
type QuizSubmission struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"nome_candidato"`
	Answers       []int     `json:"respostas"`
	Score         int       `json:"acertos"`
	Total         int       `json:"total"`
	Passed        bool      `json:"aprovado"`
	CreatedAt     time.Time `json:"created_at"`
}

package models

import "time"

// Arrest is a booking record for a citizen taken into custody.
type Arrest struct {
	ID          string    `json:"id"`
	CitizenName string    `json:"nome_cidadao"`
	CitizenRG   string    `json:"rg_cidadao,omitempty"`
	Charges     string    `json:"acusacoes"`
	SentenceMin int       `json:"pena_minutos"`
	FineAmount  float64   `json:"valor_multa"`
	Notes       string    `json:"observacoes,omitempty"`
	MugshotPath string    `json:"foto,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Wanted person status values.
const (
	WantedStatusActive   = "procurado"
	WantedStatusCaptured = "capturado"
)

// WantedPerson is an at-large suspect shown on the public wanted list
// until captured.
type WantedPerson struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Crimes      string    `json:"crimes"`
	DangerLevel int       `json:"nivel_perigo"` // 1 (low) .. 5 (extreme)
	Bounty      float64   `json:"recompensa"`
	PhotoPath   string    `json:"foto,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicWanted is the reduced projection served on the public site.
// It never exposes the creating officer.
type PublicWanted struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Crimes      string  `json:"crimes"`
	DangerLevel int     `json:"nivel_perigo"`
	Bounty      float64 `json:"recompensa"`
	PhotoPath   string  `json:"foto,omitempty"`
}

// Incident report (B.O.) status values.
const (
	ReportStatusOpen     = "aberto"
	ReportStatusArchived = "arquivado"
)

// IncidentReport is a "Boletim de Ocorrência": a logged incident.
type IncidentReport struct {
	ID           string    `json:"id"`
	Title        string    `json:"titulo"`
	Description  string    `json:"descricao"`
	Location     string    `json:"local,omitempty"`
	ReporterName string    `json:"nome_declarante,omitempty"`
	Status       string    `json:"status"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// Investigation status values. Open -> Finalized is the only
// transition; there is no way back.
const (
	InvestigationStatusOpen      = "aberta"
	InvestigationStatusFinalized = "finalizada"
)

// Investigation is a long-running inquiry that accumulates evidence
// and is closed by an explicit finalize action producing a dossier.
type Investigation struct {
	ID          string     `json:"id"`
	Title       string     `json:"titulo"`
	Description string     `json:"descricao"`
	LeadOfficer string     `json:"oficial_responsavel,omitempty"`
	Status      string     `json:"status"`
	DossierPath string     `json:"dossie,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	FinalizedBy *string    `json:"finalized_by,omitempty"`
}

// Evidence is an item attached to an investigation, usually with a
// photo stored in the upload directory.
type Evidence struct {
	ID              string    `json:"id"`
	InvestigationID string    `json:"investigation_id"`
	Description     string    `json:"descricao"`
	PhotoPath       string    `json:"foto,omitempty"`
	AddedBy         string    `json:"added_by"`
	AddedAt         time.Time `json:"added_at"`
}

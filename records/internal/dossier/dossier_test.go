package dossier

import (
	"strings"
	"testing"
	"time"

	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

func TestRender(t *testing.T) {
	inv := &models.Investigation{
		ID:          "inv-1",
		Title:       "Operacao Ferrugem",
		Description: "desmanche de veiculos na zona norte",
		LeadOfficer: "Sgt. Silva",
		Status:      models.InvestigationStatusOpen,
	}
	evidence := []*models.Evidence{
		{ID: "ev-1", Description: "chassi adulterado", PhotoPath: "/uploads/evidence/a.jpg", AddedAt: time.Now()},
		{ID: "ev-2", Description: "caderno de contabilidade", AddedAt: time.Now()},
	}

	html, err := Render(inv, evidence, "Cap. Souza", time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := string(html)
	for _, want := range []string{
		"Operacao Ferrugem",
		"desmanche de veiculos",
		"Sgt. Silva",
		"Cap. Souza",
		"chassi adulterado",
		"/uploads/evidence/a.jpg",
		"caderno de contabilidade",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dossier missing %q", want)
		}
	}
}

func TestRenderNoEvidence(t *testing.T) {
	inv := &models.Investigation{ID: "inv-2", Title: "Caso Vazio", Description: "d"}

	html, err := Render(inv, nil, "Cap. Souza", time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(html), "Nenhuma evid") {
		t.Error("Expected empty-evidence notice")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	inv := &models.Investigation{
		ID:          "inv-3",
		Title:       "<script>alert(1)</script>",
		Description: "d",
	}

	html, err := Render(inv, nil, "x", time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(string(html), "<script>alert(1)</script>") {
		t.Error("Markup was not escaped")
	}
}

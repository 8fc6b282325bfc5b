// Package dossier renders the closing report produced when an
// investigation is finalized.
package dossier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

var tmpl = template.Must(template.New("dossier").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Dossiê — {{.Investigation.Title}}</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 50rem; }
h1 { border-bottom: 2px solid #222; padding-bottom: .3rem; }
.meta { color: #555; font-size: .9rem; }
.evidence { border: 1px solid #ccc; padding: .6rem 1rem; margin: .6rem 0; }
</style>
</head>
<body>
<h1>Dossiê de Investigação</h1>
<p class="meta">Caso: {{.Investigation.ID}}<br>
Gerado em: {{.GeneratedAt.Format "02/01/2006 15:04"}} por {{.FinalizedBy}}</p>

<h2>{{.Investigation.Title}}</h2>
<p>{{.Investigation.Description}}</p>
{{if .Investigation.LeadOfficer}}<p><strong>Oficial responsável:</strong> {{.Investigation.LeadOfficer}}</p>{{end}}

<h2>Evidências ({{len .Evidence}})</h2>
{{range .Evidence}}
<div class="evidence">
<p>{{.Description}}</p>
{{if .PhotoPath}}<p><a href="{{.PhotoPath}}">foto anexada</a></p>{{end}}
<p class="meta">Adicionada em {{.AddedAt.Format "02/01/2006 15:04"}}</p>
</div>
{{else}}
<p class="meta">Nenhuma evidência registrada.</p>
{{end}}
</body>
</html>
`))

type data struct {
	Investigation *models.Investigation
	Evidence      []*models.Evidence
	FinalizedBy   string
	GeneratedAt   time.Time
}

// Render produces the dossier HTML for a finalized investigation.
func Render(inv *models.Investigation, evidence []*models.Evidence, finalizedBy string, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data{
		Investigation: inv,
		Evidence:      evidence,
		FinalizedBy:   finalizedBy,
		GeneratedAt:   generatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render dossier: %w", err)
	}
	return buf.Bytes(), nil
}

package seeder

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/precinct-systems/precinct-stack/cli/internal/client"
)

// API is the subset of the records client the seeder needs.
type API interface {
	CreateWanted(input *client.CreateWantedInput) (*client.WantedPerson, error)
	CreateArrest(input *client.CreateArrestInput) (*client.Arrest, error)
	CreateFine(input *client.CreateFineInput) (*client.Fine, error)
}

type Config struct {
	Wanted  int
	Arrests int
	Fines   int
	Seed    int64
}

type Result struct {
	Wanted  int
	Arrests int
	Fines   int
	Errors  []error
}

type Runner struct {
	api API
}

func NewRunner(api API) *Runner {
	return &Runner{api: api}
}

var crimes = []string{
	"Roubo a banco",
	"Tráfico de drogas",
	"Porte ilegal de arma",
	"Sequestro",
	"Fuga da prisão",
	"Receptação de veículos",
	"Assalto à mão armada",
	"Lavagem de dinheiro",
}

var violations = []string{
	"Excesso de velocidade",
	"Estacionamento proibido",
	"Avanço de sinal vermelho",
	"Direção perigosa",
	"Veículo sem placa",
}

func (r *Runner) Run(cfg Config) *Result {
	if cfg.Seed != 0 {
		gofakeit.Seed(cfg.Seed)
	}

	result := &Result{}

	for i := 0; i < cfg.Wanted; i++ {
		_, err := r.api.CreateWanted(&client.CreateWantedInput{
			Name:        gofakeit.Name(),
			Crimes:      randomCrimes(),
			DangerLevel: gofakeit.Number(1, 5),
			Bounty:      gofakeit.Price(1000, 100000),
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("wanted %d: %w", i, err))
			continue
		}
		result.Wanted++
	}

	for i := 0; i < cfg.Arrests; i++ {
		_, err := r.api.CreateArrest(&client.CreateArrestInput{
			CitizenName: gofakeit.Name(),
			Charges:     randomCrimes(),
			SentenceMin: gofakeit.Number(10, 120),
			FineAmount:  gofakeit.Price(500, 20000),
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("arrest %d: %w", i, err))
			continue
		}
		result.Arrests++
	}

	for i := 0; i < cfg.Fines; i++ {
		_, err := r.api.CreateFine(&client.CreateFineInput{
			CitizenName: gofakeit.Name(),
			Plate:       randomPlate(),
			Violation:   gofakeit.RandomString(violations),
			Amount:      gofakeit.Price(100, 5000),
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("fine %d: %w", i, err))
			continue
		}
		result.Fines++
	}

	return result
}

func randomCrimes() string {
	n := gofakeit.Number(1, 3)
	picked := make([]string, 0, n)
	for len(picked) < n {
		crime := gofakeit.RandomString(crimes)
		if !contains(picked, crime) {
			picked = append(picked, crime)
		}
	}
	return strings.Join(picked, ", ")
}

func randomPlate() string {
	return strings.ToUpper(gofakeit.LetterN(3)) + gofakeit.DigitN(4)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

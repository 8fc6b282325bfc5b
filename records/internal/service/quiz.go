package service

import "github.com/precinct-systems/precinct-stack/records/internal/models"

// quizPassPercent is the minimum share of correct answers for a
// candidate to pass the recruitment quiz.
const quizPassPercent = 70

// quizQuestions returns a fresh copy of the recruitment question set
// so callers cannot mutate the shared definitions.
func quizQuestions() []*models.QuizQuestion {
	return []*models.QuizQuestion{
		{
			ID:      1,
			Text:    "Qual é a primeira atitude ao chegar em uma ocorrência em andamento?",
			Options: []string{"Atirar para o alto", "Avaliar a situação e pedir reforço se necessário", "Prender todos os presentes", "Ignorar e seguir patrulha"},
			Correct: 1,
		},
		{
			ID:      2,
			Text:    "Um cidadão desarmado se recusa a obedecer uma ordem verbal. O que fazer?",
			Options: []string{"Uso imediato de força letal", "Negociar e escalar a força progressivamente", "Abandonar a ocorrência", "Disparar tiro de advertência"},
			Correct: 1,
		},
		{
			ID:      3,
			Text:    "Quando a revista pessoal é permitida?",
			Options: []string{"Sempre, sem justificativa", "Apenas com fundada suspeita", "Somente com mandado judicial", "Nunca"},
			Correct: 1,
		},
		{
			ID:      4,
			Text:    "Qual código é usado para reportar um policial ferido?",
			Options: []string{"Código 0", "Código 1", "Código 4", "Código 6"},
			Correct: 0,
		},
		{
			ID:      5,
			Text:    "Um suspeito em fuga entra em área residencial movimentada. O procedimento correto é:",
			Options: []string{"Continuar a perseguição em alta velocidade", "Reduzir, manter contato visual e coordenar cerco", "Atirar nos pneus", "Encerrar a ocorrência"},
			Correct: 1,
		},
		{
			ID:      6,
			Text:    "Bens apreendidos durante uma operação devem ser:",
			Options: []string{"Divididos entre a equipe", "Descartados", "Registrados no sistema de apreensões", "Devolvidos imediatamente"},
			Correct: 2,
		},
		{
			ID:      7,
			Text:    "O uso da viatura fora de serviço é:",
			Options: []string{"Permitido a qualquer momento", "Proibido salvo autorização do comando", "Permitido aos fins de semana", "Obrigatório"},
			Correct: 1,
		},
		{
			ID:      8,
			Text:    "Ao testemunhar conduta irregular de um colega, o oficial deve:",
			Options: []string{"Ignorar", "Reportar ao comando", "Confrontar em público", "Registrar nas redes sociais"},
			Correct: 1,
		},
		{
			ID:      9,
			Text:    "A leitura dos direitos ao preso deve ocorrer:",
			Options: []string{"Somente na delegacia", "No momento da prisão", "Apenas se solicitado", "Nunca"},
			Correct: 1,
		},
		{
			ID:      10,
			Text:    "Qual a hierarquia correta, da menor para a maior patente?",
			Options: []string{"Comandante, Recruta, Oficial", "Recruta, Oficial, Comandante", "Oficial, Comandante, Recruta", "Recruta, Comandante, Oficial"},
			Correct: 1,
		},
	}
}

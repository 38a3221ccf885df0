package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type GeneratedTask struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `json:"category"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText analyzes free text and extracts task drafts using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`Eres un asistente de extracción de tareas. Extrae las tareas concretas del siguiente texto.

Hora actual: %s

Texto:
%s

Devuelve un array JSON con las tareas extraídas en este formato:
[
  {
    "name": "título breve de la tarea",
    "description": "descripción detallada",
    "deadline": "fecha límite en formato ISO8601 (ej: 2025-10-28T23:59:59Z), o null si no se menciona",
    "category": "categoría corta (trabajo, hogar, estudio, etc.)"
  }
]

Notas:
- Si no hay ninguna tarea, devuelve un array vacío []
- Convierte expresiones relativas ("mañana", "la próxima semana") en fechas concretas
- deadline debe ser siempre una cadena ISO8601 o null
- Devuelve solo el JSON, sin texto adicional`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

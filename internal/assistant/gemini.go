package assistant

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif" // registered for image.Decode
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/Obiagu00/CampusConnectNG/internal/config"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role Role
	Text string
}

const systemInstruction = "You are CampusConnect AI, a helpful and friendly assistant for a student marketplace app in Nigeria. Your goal is to help users find items, understand product details, and navigate the app. Keep your responses concise, helpful, and use a friendly tone. You can use emojis to make the conversation more engaging."

const imageAnalysisPrompt = "You are a photography assistant for a student marketplace. Analyze this product photo based on clarity, lighting, and composition (is the product centered and clear?). Provide one single, concise, and helpful sentence of feedback. Start with an emoji (e.g., ✅ for good, \U0001F4A1 for suggestions). Be friendly and encouraging."

// Fallback texts shown instead of surfacing assistant failures to the user.
const (
	chatFallback  = "Oops! I'm having a little trouble connecting. Please try again in a moment."
	imageFallback = "\U0001F4A1 Sorry, I couldn't analyze the image. Please check your connection and try again."
)

// IAssistant defines the interface to the conversational assistant and the
// product-photo analyzer. Both calls tolerate failure by returning a
// user-facing apology string; they never propagate an error.
type IAssistant interface {
	Converse(ctx context.Context, history []ChatMessage, newMessage string) string
	AnalyzeProductImage(ctx context.Context, imageData []byte, mimeType string) string
}

// geminiAssistant implements IAssistant against the Gemini generateContent API.
type geminiAssistant struct {
	cfg        *config.Config
	httpClient *http.Client
	sessionID  string // correlates one process's assistant traffic in logs
}

// NewGeminiAssistant creates a new assistant client.
func NewGeminiAssistant(cfg *config.Config) IAssistant {
	return &geminiAssistant{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.AssistantTimeout},
		sessionID:  uuid.NewString(),
	}
}

// --- Wire types for the generateContent endpoint ---

type generateRequest struct {
	SystemInstruction *wireContent  `json:"system_instruction,omitempty"`
	Contents          []wireContent `json:"contents"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inline_data,omitempty"`
}

type wireInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generateResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
}

// Converse sends the conversation history plus the new user message and
// returns the model's reply, or the fixed fallback text on any failure.
func (a *geminiAssistant) Converse(ctx context.Context, history []ChatMessage, newMessage string) string {
	contents := make([]wireContent, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, wireContent{Role: string(m.Role), Parts: []wirePart{{Text: m.Text}}})
	}
	contents = append(contents, wireContent{Role: string(RoleUser), Parts: []wirePart{{Text: newMessage}}})

	text, err := a.generate(ctx, generateRequest{
		SystemInstruction: &wireContent{Parts: []wirePart{{Text: systemInstruction}}},
		Contents:          contents,
	})
	if err != nil {
		log.Printf("Assistant chat request failed (session %s): %v", a.sessionID, err)
		return chatFallback
	}
	return text
}

// AnalyzeProductImage asks the model for one sentence of photo feedback. The
// image is downscaled before upload when it exceeds the configured maximum
// dimension. Any failure yields the fixed fallback text.
func (a *geminiAssistant) AnalyzeProductImage(ctx context.Context, imageData []byte, mimeType string) string {
	maxSizeBytes := a.cfg.ImageMaxSizeMB * 1024 * 1024
	if maxSizeBytes > 0 && len(imageData) > maxSizeBytes {
		log.Printf("Image rejected for analysis: %d bytes exceeds limit of %d (session %s)", len(imageData), maxSizeBytes, a.sessionID)
		return imageFallback
	}

	data, mime := a.prepareImage(imageData, mimeType)

	text, err := a.generate(ctx, generateRequest{
		Contents: []wireContent{{
			Role: string(RoleUser),
			Parts: []wirePart{
				{InlineData: &wireInlineData{MimeType: mime, Data: base64.StdEncoding.EncodeToString(data)}},
				{Text: imageAnalysisPrompt},
			},
		}},
	})
	if err != nil {
		log.Printf("Image analysis request failed (session %s): %v", a.sessionID, err)
		return imageFallback
	}
	return text
}

// prepareImage downscales oversized photos to the configured maximum
// dimension, re-encoding as JPEG. Images that fail to decode, or are already
// small enough, pass through untouched.
func (a *geminiAssistant) prepareImage(imageData []byte, mimeType string) ([]byte, string) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		log.Printf("Could not decode image for downscaling (%v), sending as-is", err)
		return imageData, mimeType
	}

	maxDim := a.cfg.ImageMaxDimension
	if maxDim <= 0 || (img.Bounds().Dx() <= maxDim && img.Bounds().Dy() <= maxDim) {
		return imageData, mimeType
	}

	resized := resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		log.Printf("Could not re-encode downscaled image (%v), sending original", err)
		return imageData, mimeType
	}
	log.Printf("Downscaled %s image from %dx%d to %dx%d for analysis",
		format, img.Bounds().Dx(), img.Bounds().Dy(), resized.Bounds().Dx(), resized.Bounds().Dy())
	return buf.Bytes(), "image/jpeg"
}

// generate performs one generateContent call and extracts the reply text.
func (a *geminiAssistant) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.cfg.GeminiBaseURL, a.cfg.GeminiModel)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.cfg.GeminiAPIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to contact assistant service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant service returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse assistant response: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("assistant response contained no candidates")
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("assistant response contained no text")
	}
	return sb.String(), nil
}

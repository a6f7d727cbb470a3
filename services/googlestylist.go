package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stylesyncapi/models"

	"google.golang.org/genai"
)

// LLMModelName is the Gemini model to use for stylist calls.
type LLMModelName int32

const (
	Flash20 LLMModelName = iota
	Flash25
	FlashLite25
	Pro25
)

// The Stringer interface for LLMModelName.
func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

const (
	// stylist calls are blocking network operations with a hard deadline
	stylistRequestTimeout = 60 * time.Second
	// transient transport failures only; schema failures are never retried
	maxGenerateAttempts = 3
	// extraction and recommendation both run cold, deterministic-ish
	stylistTemperature = 0.1
)

func floatPointer(f float32) *float32 {
	return &f
}

// StylistProvider is the external collaborator boundary. Both operations
// return the raw structured JSON payload; decoding and validation happen in
// the models package so a mock can exercise the whole pipeline.
type StylistProvider interface {
	AnalyzeClothing(ctx context.Context, image []byte, mimeType string) ([]byte, error)
	RecommendOutfit(ctx context.Context, wardrobeJSON []byte, prefs models.PreferenceBundle) ([]byte, error)
}

// GoogleStylistService talks to the Gemini API with JSON-mode structured
// output constrained by an explicit response schema.
type GoogleStylistService struct {
	APIKey string
	Model  LLMModelName
}

const analyzeSystemPrompt = `You are an expert fashion analyst. Analyze the clothing item in the image and extract detailed information about its properties.
Focus on identifying the category, colors, fabric type, pattern, fit, and other relevant fashion attributes.
Be specific and accurate in your analysis. If certain attributes are not clearly visible, make reasonable inferences based on what you can see.
Output the information in the specified JSON format.`

var clothingItemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category":      {Type: genai.TypeString},
		"description":   {Type: genai.TypeString},
		"color":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"gender":        {Type: genai.TypeString},
		"fabric":        {Type: genai.TypeString},
		"pattern":       {Type: genai.TypeString},
		"fit":           {Type: genai.TypeString},
		"sleeve_length": {Type: genai.TypeString},
		"neck_type":     {Type: genai.TypeString},
		"occasion":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"season":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"features":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{
		"category", "description", "color", "gender", "fabric", "pattern",
		"fit", "sleeve_length", "neck_type", "occasion", "season", "features",
	},
}

var outfitRecommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommended_items": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"reasoning":         {Type: genai.TypeString},
		"style_tips":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"recommended_items", "reasoning", "style_tips"},
}

func (gs GoogleStylistService) AnalyzeClothing(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		{Text: "Analyze this clothing item and extract its properties."},
	}
	return gs.generateJSON(ctx, "clothing analysis", analyzeSystemPrompt, parts, clothingItemSchema)
}

// BuildRecommendationSystemPrompt embeds the serialized wardrobe into the
// stylist persona. The "only use existing ids" guideline is a request-time
// instruction, not a guarantee; the wardrobe store still resolves every
// returned id independently.
func BuildRecommendationSystemPrompt(wardrobeJSON []byte, maxOutfits int) string {
	return fmt.Sprintf(`You are an expert fashion stylist. Based on the user's preferences and their wardrobe items,
recommend complete outfits that match their needs. Consider color coordination, style compatibility, occasion appropriateness, and seasonal suitability.

User's Wardrobe:
%s

Guidelines:
1. Recommend complete outfits (try to include both top and bottom wear when applicable)
2. Consider color harmony and style coherence
3. Match the occasion and season specified by the user
4. Provide practical styling advice
5. Maximum %d outfit recommendations
6. Only use item IDs that exist in the wardrobe`, wardrobeJSON, maxOutfits)
}

func (gs GoogleStylistService) RecommendOutfit(ctx context.Context, wardrobeJSON []byte, prefs models.PreferenceBundle) ([]byte, error) {
	system := BuildRecommendationSystemPrompt(wardrobeJSON, prefs.Limit())
	parts := []*genai.Part{
		{Text: "User preferences: " + prefs.PromptText()},
	}
	return gs.generateJSON(ctx, "outfit recommendation", system, parts, outfitRecommendationSchema)
}

// generateJSON runs one structured-output call with a bounded timeout and a
// bounded retry budget for transport failures. Blocked prompts and empty
// candidates come back as schema failures since retrying them is pointless.
func (gs GoogleStylistService) generateJSON(ctx context.Context, op string, system string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  gs.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		CandidateCount:   1,
		MaxOutputTokens:  8192,
		Temperature:      floatPointer(stylistTemperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, stylistRequestTimeout)
		result, err := client.Models.GenerateContent(callCtx, gs.Model.String(), []*genai.Content{{Parts: parts}}, config)
		cancel()
		if err != nil {
			lastErr = err
			log.Printf("[Stylist] %s attempt %d failed: %v", op, attempt, err)
			if ctx.Err() != nil {
				break // caller gave up, do not burn remaining attempts
			}
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		if result.PromptFeedback != nil {
			fmt.Println(result.PromptFeedback.BlockReason)
			fmt.Println(result.PromptFeedback.BlockReasonMessage)
			return nil, &models.SchemaError{
				Subject: op,
				Reason:  fmt.Sprintf("content blocked: %s", result.PromptFeedback.BlockReasonMessage),
			}
		}
		if result.UsageMetadata != nil {
			fmt.Println("Input token count:", result.UsageMetadata.PromptTokenCount)
			fmt.Println("Output token count:", result.UsageMetadata.CandidatesTokenCount)
			fmt.Println("Total token count:", result.UsageMetadata.TotalTokenCount)
		}

		text := result.Text()
		if text == "" {
			return nil, &models.SchemaError{Subject: op, Reason: "empty response from model"}
		}
		return []byte(text), nil
	}

	return nil, &models.TransportError{Op: op, Attempts: maxGenerateAttempts, Err: lastErr}
}

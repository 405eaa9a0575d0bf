package synth

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/wardrobe"
)

const modelPrompt = "You are an expert fashion photographer AI. Transform the person in this photo " +
	"into a full-body fashion model shot: neutral studio background, even lighting, standing in a " +
	"relaxed frontal pose, preserving the person's identity, body shape and skin tone exactly. " +
	"Return the photorealistic result image only."

const tryOnPromptFmt = "You are a virtual try-on AI. The first image is the model, the second is a " +
	"%s garment. Render the model wearing the garment, realistically draped and fitted, keeping the " +
	"model's identity, pose, background and every other clothing layer unchanged. Return the result " +
	"image only."

const posePromptFmt = "You are a fashion photography AI. Re-render this exact model, outfit and " +
	"background from a new angle: %s. Change nothing but the pose. Return the result image only."

// dataURLPattern matches an inline base64 image in the model's reply.
var dataURLPattern = regexp.MustCompile(`data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=]+`)

// OpenAIClient implements Client against any OpenAI-compatible endpoint
// serving an image-capable model.
type OpenAIClient struct {
	client *openai.Client
	model  string
	size   string
	log    zerolog.Logger
}

// NewOpenAIClient builds a client from configuration. The API key comes
// from the OPENAI_API_KEY environment; cfg supplies model and endpoint.
func NewOpenAIClient(apiKey string, cfg *config.Config, log zerolog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("synthesis API key is not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.APIBaseURL != "" {
		clientCfg.BaseURL = cfg.APIBaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.ImageModel,
		size:   cfg.ImageSize,
		log:    log.With().Str("component", "synth").Logger(),
	}, nil
}

// GenerateModelImage implements Client.
func (c *OpenAIClient) GenerateModelImage(ctx context.Context, userPhoto string) (string, error) {
	return c.generate(ctx, "model", modelPrompt, userPhoto)
}

// GenerateTryOnImage implements Client.
func (c *OpenAIClient) GenerateTryOnImage(ctx context.Context, baseImage, garmentImage string, category wardrobe.Category) (string, error) {
	prompt := fmt.Sprintf(tryOnPromptFmt, category)
	return c.generate(ctx, "tryon", prompt, baseImage, garmentImage)
}

// GeneratePoseVariation implements Client.
func (c *OpenAIClient) GeneratePoseVariation(ctx context.Context, baseImage, poseLabel string) (string, error) {
	prompt := fmt.Sprintf(posePromptFmt, poseLabel)
	return c.generate(ctx, "pose", prompt, baseImage)
}

// generate issues one multimodal completion with the prompt and input
// images and extracts the returned image reference.
func (c *OpenAIClient) generate(ctx context.Context, kind, prompt string, images ...string) (string, error) {
	parts := make([]openai.ChatMessagePart, 0, len(images)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: sizedPrompt(prompt, c.size),
	})
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: img},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}

	c.log.Debug().Str("kind", kind).Str("model", c.model).Int("images", len(images)).Msg("synthesis request")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Error().Str("kind", kind).Err(err).Msg("synthesis call failed")
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewSynthesis("the image service returned an empty response; try again")
	}

	image := ExtractImageRef(resp.Choices[0].Message.Content)
	if image == "" {
		return "", errors.NewSynthesis("the image service returned no image; try a different photo")
	}

	c.log.Debug().Str("kind", kind).Msg("synthesis complete")
	return image, nil
}

// sizedPrompt appends the configured output resolution to a synthesis
// prompt. Chat-completion image models take the size as an instruction,
// not a request parameter.
func sizedPrompt(prompt, size string) string {
	if size == "" {
		return prompt
	}
	return fmt.Sprintf("%s Output the image at %s resolution.", prompt, size)
}

// ExtractImageRef pulls the first inline image reference out of a model
// reply, or "" if there is none.
func ExtractImageRef(content string) string {
	return dataURLPattern.FindString(content)
}

// ClassifyError converts a transport or API error into a user-facing
// StudioError, distinguishing invalid input, content-policy refusal, and
// service failure.
func ClassifyError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		if isPolicyRefusal(apiErr) {
			return errors.NewPolicyRefused("the request was declined by the image service's content policy")
		}
		switch apiErr.HTTPStatusCode {
		case 400, 413, 415:
			return errors.NewInvalidInput(fmt.Sprintf("the image service rejected the input: %s", apiErr.Message))
		default:
			return errors.NewSynthesis(fmt.Sprintf("the image service failed (%d): %s", apiErr.HTTPStatusCode, apiErr.Message))
		}
	}
	return errors.NewSynthesis(fmt.Sprintf("could not reach the image service: %v", err))
}

func isPolicyRefusal(apiErr *openai.APIError) bool {
	if code, ok := apiErr.Code.(string); ok {
		if strings.Contains(code, "content_policy") || strings.Contains(code, "content_filter") {
			return true
		}
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "content policy") || strings.Contains(msg, "safety")
}

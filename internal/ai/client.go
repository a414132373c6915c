// Package ai wraps the OpenAI API for speech-to-text and chat-completion
// calls. Prompting and response parsing belong to the service layer; this
// package is the transport.
package ai

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// defaultChatModel is used when no model is configured.
const defaultChatModel = openai.GPT4oMini

// Client calls OpenAI for transcription and completions.
type Client struct {
	api       *openai.Client
	chatModel string
}

// New returns a Client authenticated with apiKey. chatModel may be empty,
// in which case a default model is used.
func New(apiKey, chatModel string) *Client {
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	return &Client{
		api:       openai.NewClient(apiKey),
		chatModel: chatModel,
	}
}

// Transcribe sends the audio to the Whisper model and returns the
// recognized text. filename carries the extension Whisper uses to pick
// a decoder.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}

// Complete sends one chat completion with the given system instructions
// and user input and returns the raw response text.
func (c *Client) Complete(ctx context.Context, instructions, input string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

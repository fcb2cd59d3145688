package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/domain/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChatService relays user prompts to an OpenAI-compatible chat-completions
// endpoint. Replies are cached in redis keyed by prompt hash so repeated
// questions do not burn upstream quota.
type ChatService struct {
	client   *http.Client
	rdb      *redis.Client
	apiURL   string
	apiKey   string
	model    string
	cacheTTL time.Duration
}

func NewChatService(client *http.Client, rdb *redis.Client, apiURL, apiKey, chatModel string, cacheTTL time.Duration) *ChatService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ChatService{
		client:   client,
		rdb:      rdb,
		apiURL:   apiURL,
		apiKey:   apiKey,
		model:    chatModel,
		cacheTTL: cacheTTL,
	}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	ID     string `json:"id"`
	Reply  string `json:"reply"`
	Cached bool   `json:"cached"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

const chatSystemPrompt = "You are a personal finance assistant. Answer briefly and practically."

func (s *ChatService) Ask(ctx context.Context, principal *model.Principal, req ChatRequest) (*ChatReply, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message is required: %w", common.ErrBadRequest)
	}
	if s.apiURL == "" {
		return nil, fmt.Errorf("chat backend not configured: %w", common.ErrServiceUnavailable)
	}

	cacheKey := s.cacheKey(req.Message)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return &ChatReply{ID: uuid.NewString(), Reply: cached, Cached: true}, nil
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: chat cache read failed: %v", err)
		}
	}

	reply, err := s.complete(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, reply, s.cacheTTL).Err(); err != nil {
			log.Printf("WARN: chat cache write failed: %v", err)
		}
	}

	log.Printf("Chat reply served for user %q", principal.Name)
	return &ChatReply{ID: uuid.NewString(), Reply: reply}, nil
}

func (s *ChatService) complete(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: s.model,
		Messages: []completionMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ChatService.complete marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ChatService.complete request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat backend unreachable: %w", common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("ERROR: chat backend returned %d: %s", resp.StatusCode, raw)
		return "", fmt.Errorf("chat backend returned %d: %w", resp.StatusCode, common.ErrServiceUnavailable)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("ChatService.complete decode: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat backend returned no choices: %w", common.ErrServiceUnavailable)
	}
	return completion.Choices[0].Message.Content, nil
}

func (s *ChatService) cacheKey(message string) string {
	sum := sha256.Sum256([]byte(s.model + "\x00" + message))
	return "chat:reply:" + hex.EncodeToString(sum[:])
}

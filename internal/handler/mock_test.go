package handler

import (
	"context"
	"sync"
)

// MockTelegramClient is a mock implementation of TelegramClient for testing
type MockTelegramClient struct {
	SendMessageFunc func(ctx context.Context, text string) error
	Sent            []string
	mu              sync.Mutex
}

// SendMessage implements the TelegramClient interface
func (m *MockTelegramClient) SendMessage(ctx context.Context, text string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, text)
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, text)
	}
	return nil
}

// CallCount returns the number of times SendMessage was called
func (m *MockTelegramClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// GetSent returns the message text sent at the specified index
func (m *MockTelegramClient) GetSent(index int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sent[index]
}

// MockConfirmer is a mock implementation of Confirmer for testing
type MockConfirmer struct {
	ConfirmFunc func(ctx context.Context, url string) error
	URLs        []string
	mu          sync.Mutex
}

// Confirm implements the Confirmer interface
func (m *MockConfirmer) Confirm(ctx context.Context, url string) error {
	m.mu.Lock()
	m.URLs = append(m.URLs, url)
	m.mu.Unlock()
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, url)
	}
	return nil
}

// CallCount returns the number of times Confirm was called
func (m *MockConfirmer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.URLs)
}

// GetURL returns the URL confirmed at the specified index
func (m *MockConfirmer) GetURL(index int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.URLs[index]
}

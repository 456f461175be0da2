package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/verdantiq/greenrag/infrastructure/provider"
)

// fakeEmbedder hands out fixed-dimension vectors derived from the text
// length, so distinct chunks get distinct but deterministic embeddings.
type fakeEmbedder struct {
	mu       sync.Mutex
	calls    int
	failOn   map[int]error
	failWith error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if err, ok := f.failOn[f.calls]; ok {
		return nil, err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeGenerator returns a canned response, or errors. failFirst makes the
// first N calls fail before the generator recovers.
type fakeGenerator struct {
	mu        sync.Mutex
	calls     int
	response  string
	err       error
	failFirst int
	lastReq   provider.CompletionRequest
}

func (f *fakeGenerator) Complete(_ context.Context, req provider.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	if f.calls <= f.failFirst {
		return "", errProviderDown
	}
	return f.response, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGenerator) lastUserContent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var parts []string
	for _, m := range f.lastReq.Messages() {
		if m.Role() == provider.RoleUser {
			parts = append(parts, m.Content())
		}
	}
	return strings.Join(parts, "\n")
}

var errProviderDown = errors.New("connection refused")

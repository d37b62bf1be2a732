// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package answers

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"path/filepath"
	"sync"
)

// Embedder is the embedding surface the answer finder depends on.
// Implementations must return unit-length vectors so that similarity can
// be computed as a dot product.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
	ModelID() string
}

// OnnxEmbedder wraps Encoder with an in-memory vector cache. Question
// batteries are embedded once per run and reused across documents, which
// the cache makes cheap.
type OnnxEmbedder struct {
	enc      *Encoder
	modelID  string
	memCache map[string][]float32
	mu       sync.RWMutex
}

// NewOnnxEmbedder initializes the encoder. Construction failure is fatal
// for the semantic route; callers decide whether to fall back.
func NewOnnxEmbedder(cfg EncoderConfig) (*OnnxEmbedder, error) {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return nil, err
	}
	return &OnnxEmbedder{
		enc:      enc,
		modelID:  filepath.Base(cfg.ModelPath),
		memCache: make(map[string][]float32),
	}, nil
}

// Close releases encoder resources.
func (o *OnnxEmbedder) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.memCache = nil
	if o.enc != nil {
		err := o.enc.Close()
		o.enc = nil
		return err
	}
	return nil
}

// ModelID identifies the loaded model, used in cache keys and reports.
func (o *OnnxEmbedder) ModelID() string {
	return o.modelID
}

// EmbedText embeds one string, serving repeats from the cache.
func (o *OnnxEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if o == nil || o.enc == nil {
		return nil, errors.New("embedder is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := o.cacheKey(text)
	if vec := o.getCached(key); vec != nil {
		return vec, nil
	}
	vec, err := o.enc.Encode(text)
	if err != nil {
		return nil, err
	}
	o.store(key, vec)
	return cloneVector(vec), nil
}

// EmbedTexts embeds a slice sequentially; the runtime session is not
// reentrant so there is nothing to gain from fanning out here.
func (o *OnnxEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := o.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (o *OnnxEmbedder) cacheKey(text string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, o.modelID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, text)
	return hex.EncodeToString(h.Sum(nil))
}

func (o *OnnxEmbedder) getCached(key string) []float32 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if vec, ok := o.memCache[key]; ok {
		return cloneVector(vec)
	}
	return nil
}

func (o *OnnxEmbedder) store(key string, vec []float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.memCache != nil {
		o.memCache[key] = cloneVector(vec)
	}
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}

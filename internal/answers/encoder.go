// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package answers

import (
	"errors"
	"fmt"
	"math"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// EncoderConfig locates the sentence-transformer model artifacts.
type EncoderConfig struct {
	// OrtLibrary is the path to the onnxruntime shared library. Empty
	// means the platform default search path.
	OrtLibrary    string
	ModelPath     string
	TokenizerPath string
	// MaxSeqLen caps the token sequence; 0 means 256.
	MaxSeqLen int
}

// Encoder runs a MiniLM-style ONNX model to produce sentence embeddings.
// Pooling is attention-masked mean over the last hidden state, followed by
// L2 normalization, so cosine similarity reduces to a dot product.
type Encoder struct {
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	maxLen  int
}

// NewEncoder loads the tokenizer and model and initializes the runtime.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, errors.New("encoder requires model and tokenizer paths")
	}
	maxLen := cfg.MaxSeqLen
	if maxLen <= 0 {
		maxLen = 256
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", cfg.TokenizerPath, err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{MaxLength: maxLen})

	if !ort.IsInitialized() {
		if cfg.OrtLibrary != "" {
			ort.SetSharedLibraryPath(cfg.OrtLibrary)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"}, nil)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
	}

	return &Encoder{tk: tk, session: session, maxLen: maxLen}, nil
}

// Close releases the runtime session.
func (e *Encoder) Close() error {
	if e == nil || e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}

// Encode embeds one text.
func (e *Encoder) Encode(text string) ([]float32, error) {
	if e == nil || e.session == nil {
		return nil, errors.New("encoder is closed")
	}

	enc, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	seqLen := len(enc.Ids)
	if seqLen == 0 {
		return nil, errors.New("empty token sequence")
	}
	if seqLen > e.maxLen {
		seqLen = e.maxLen
	}

	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	types := make([]int64, seqLen)
	for i := 0; i < seqLen; i++ {
		ids[i] = int64(enc.Ids[i])
		if i < len(enc.AttentionMask) {
			mask[i] = int64(enc.AttentionMask[i])
		} else {
			mask[i] = 1
		}
		if i < len(enc.TypeIds) {
			types[i] = int64(enc.TypeIds[i])
		}
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, err
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, err
	}
	defer maskTensor.Destroy()
	typesTensor, err := ort.NewTensor(shape, types)
	if err != nil {
		return nil, err
	}
	defer typesTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor, typesTensor}, outputs); err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output rank %d", len(dims))
	}
	hiddenSize := int(dims[2])
	return meanPool(hidden.GetData(), mask, seqLen, hiddenSize), nil
}

// meanPool averages token vectors weighted by the attention mask and
// L2-normalizes the result.
func meanPool(data []float32, mask []int64, seqLen, hiddenSize int) []float32 {
	out := make([]float32, hiddenSize)
	var count float32
	for t := 0; t < seqLen; t++ {
		if mask[t] == 0 {
			continue
		}
		count++
		base := t * hiddenSize
		for d := 0; d < hiddenSize; d++ {
			out[d] += data[base+d]
		}
	}
	if count == 0 {
		return out
	}
	var norm float64
	for d := range out {
		out[d] /= count
		norm += float64(out[d]) * float64(out[d])
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for d := range out {
			out[d] *= inv
		}
	}
	return out
}

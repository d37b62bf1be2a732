// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package answers resolves a fixed question battery against extracted
// document text. Two routes compete per question: a literal synonym scan
// and an embedding-similarity search; the higher-scoring route supplies
// the text an answer is extracted from.
package answers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"insight-ops/internal/observability"
	"insight-ops/internal/textextract"
)

// Method names the route that produced an answer.
type Method string

const (
	MethodSynonym  Method = "synonym"
	MethodSemantic Method = "semantic"
)

// NotFound is the literal answer recorded when neither route produced a
// usable text span.
const NotFound = "Not found"

// AnswerRecord is one resolved question. Page is 1-based, or -1 when the
// answer is NotFound. Confidence is in [0,1].
type AnswerRecord struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}

// Finder answers question batteries over per-page document text. A nil
// Embedder disables the semantic route; the synonym route still runs,
// which keeps the finder usable where no model is deployed.
type Finder struct {
	embedder  Embedder
	synonyms  map[string][]string
	threshold float64
	observer  *observability.StandardObserver
}

// NewFinder builds a Finder. synonyms may be nil, in which case
// DefaultSynonyms is used.
func NewFinder(embedder Embedder, synonyms map[string][]string) *Finder {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	return &Finder{
		embedder:  embedder,
		synonyms:  synonyms,
		threshold: SimilarityThreshold,
	}
}

// SetObserver attaches observability. Passing nil disables it.
func (f *Finder) SetObserver(obs *observability.StandardObserver) {
	f.observer = obs
}

// paragraphRef locates one embedded paragraph inside the document.
type paragraphRef struct {
	page int
	text string
	vec  []float32
}

// Answer resolves every question against the pages, in question order.
// Pages are embedded once and reused across the whole battery.
func (f *Finder) Answer(ctx context.Context, pages []string, questions []string) ([]AnswerRecord, error) {
	var finishTiming func(bool, map[string]interface{})
	if f.observer != nil {
		finishTiming = f.observer.StartTiming("answer_finder", "answer_battery", fmt.Sprintf("%d questions", len(questions)))
	}

	paragraphs, err := f.embedParagraphs(ctx, pages)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, nil)
		}
		return nil, err
	}

	records := make([]AnswerRecord, 0, len(questions))
	for _, q := range questions {
		rec, err := f.answerOne(ctx, pages, paragraphs, q)
		if err != nil {
			if finishTiming != nil {
				finishTiming(false, nil)
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"pages":      len(pages),
			"paragraphs": len(paragraphs),
		})
	}
	return records, nil
}

func (f *Finder) embedParagraphs(ctx context.Context, pages []string) ([]paragraphRef, error) {
	if f.embedder == nil {
		return nil, nil
	}
	var refs []paragraphRef
	for i, page := range pages {
		for _, para := range textextract.SplitParagraphs(page) {
			refs = append(refs, paragraphRef{page: i + 1, text: para})
		}
	}
	texts := make([]string, len(refs))
	for i, r := range refs {
		texts[i] = r.text
	}
	vecs, err := f.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed document paragraphs: %w", err)
	}
	for i := range refs {
		refs[i].vec = vecs[i]
	}
	return refs, nil
}

func (f *Finder) answerOne(ctx context.Context, pages []string, paragraphs []paragraphRef, question string) (AnswerRecord, error) {
	synText, synPage, synFound := f.synonymCandidate(pages, question)
	synScore := f.threshold + 0.1

	semText, semPage, semScore, err := f.semanticCandidate(ctx, paragraphs, question)
	if err != nil {
		return AnswerRecord{}, err
	}

	// Ties favor the semantic route; the synonym route must strictly
	// outscore it to win.
	if synFound && synScore > semScore {
		return AnswerRecord{
			Question:   question,
			Answer:     extractAnswer(question, synText),
			Page:       synPage,
			Confidence: synScore,
			Method:     MethodSynonym,
		}, nil
	}
	if semText != "" {
		return AnswerRecord{
			Question:   question,
			Answer:     extractAnswer(question, semText),
			Page:       semPage,
			Confidence: semScore,
			Method:     MethodSemantic,
		}, nil
	}
	if synFound {
		return AnswerRecord{
			Question:   question,
			Answer:     extractAnswer(question, synText),
			Page:       synPage,
			Confidence: synScore,
			Method:     MethodSynonym,
		}, nil
	}
	return AnswerRecord{
		Question:   question,
		Answer:     NotFound,
		Page:       -1,
		Confidence: 0,
		Method:     MethodSemantic,
	}, nil
}

// synonymCandidate scans pages in order for the first case-insensitive
// occurrence of any registered phrase, then returns the first sentence on
// that page containing the phrase. First match wins.
func (f *Finder) synonymCandidate(pages []string, question string) (text string, page int, found bool) {
	phrases := f.synonyms[question]
	if len(phrases) == 0 {
		return "", 0, false
	}
	for i, pageText := range pages {
		lower := strings.ToLower(pageText)
		for _, phrase := range phrases {
			needle := strings.ToLower(phrase)
			if !strings.Contains(lower, needle) {
				continue
			}
			// A phrase that spans a sentence boundary matches the page
			// but no single sentence; it is not a hit.
			for _, sentence := range textextract.SplitSentences(pageText) {
				if strings.Contains(strings.ToLower(sentence), needle) {
					return sentence, i + 1, true
				}
			}
		}
	}
	return "", 0, false
}

// semanticCandidate returns the single best paragraph across the whole
// document. Only strict improvement over the zero seed replaces the
// incumbent, so ties keep the first-seen paragraph and paragraphs scoring
// at or below zero report no candidate.
func (f *Finder) semanticCandidate(ctx context.Context, paragraphs []paragraphRef, question string) (text string, page int, score float64, err error) {
	if f.embedder == nil || len(paragraphs) == 0 {
		return "", 0, 0, nil
	}
	qVec, err := f.embedder.EmbedText(ctx, question)
	if err != nil {
		return "", 0, 0, fmt.Errorf("embed question %q: %w", question, err)
	}
	score = 0
	for _, ref := range paragraphs {
		s := dot(qVec, ref.vec)
		if s > score {
			score = s
			text = ref.text
			page = ref.page
		}
	}
	return text, page, score, nil
}

// dot is cosine similarity for the unit-length vectors Embedder returns.
func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

var (
	yesNoPrefix   = regexp.MustCompile(`(?i)^(is|are|does|do|have|has)\b`)
	quantityHint  = regexp.MustCompile(`(?i)\b(maximum|minimum|how many|how much|percentage|number of)\b`)
	yesNoToken    = regexp.MustCompile(`(?i)\b(yes|no)\b`)
	quantityMatch = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(feet|foot|ft|meters|m|%|percent)?`)
	clauseEnd     = regexp.MustCompile(`[.!?]`)
)

// extractAnswer shapes the winning text into a typed answer based on the
// form of the question.
func extractAnswer(question, text string) string {
	switch {
	case yesNoPrefix.MatchString(question):
		if answer, ok := extractYesNo(text); ok {
			return answer
		}
	case quantityHint.MatchString(question):
		if answer, ok := extractQuantity(text); ok {
			return answer
		}
	}
	return firstSentenceOrTruncate(text)
}

// extractYesNo finds the first standalone yes/no token and appends the
// trailing explanatory clause up to the next sentence terminator.
func extractYesNo(text string) (string, bool) {
	loc := yesNoToken.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	token := strings.ToLower(text[loc[0]:loc[1]])
	answer := strings.ToUpper(token[:1]) + token[1:]
	rest := strings.TrimLeft(text[loc[1]:], " \t,:;-")
	if end := clauseEnd.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	rest = strings.TrimSpace(rest)
	if rest != "" {
		return answer + ". " + rest, true
	}
	return answer, true
}

// extractQuantity finds the first number with an optional unit token,
// normalizing "percent" to "%" and "foot" to "feet".
func extractQuantity(text string) (string, bool) {
	m := quantityMatch.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	number, unit := m[1], strings.ToLower(m[2])
	switch unit {
	case "percent":
		unit = "%"
	case "foot":
		unit = "feet"
	}
	if unit == "" {
		return number, true
	}
	if unit == "%" {
		return number + "%", true
	}
	return number + " " + unit, true
}

// firstSentenceOrTruncate returns the first sentence, or a 200-character
// truncation with an ellipsis when sentence splitting yields nothing.
func firstSentenceOrTruncate(text string) string {
	if sentences := textextract.SplitSentences(text); len(sentences) > 0 {
		return sentences[0]
	}
	text = strings.TrimSpace(text)
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}

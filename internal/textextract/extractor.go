// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textextract produces normalized per-page text from PDF
// documents. Only the embedded text layer is read here; pages without one
// are flagged for OCR, which runs outside this module, and the OCR output
// is merged back in.
package textextract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Page holds the normalized text of one document page. NeedsOCR marks
// pages whose text layer was empty.
type Page struct {
	Number   int
	Text     string
	NeedsOCR bool
}

// Document is the ordered page sequence for one source file.
type Document struct {
	Filename string
	Pages    []Page
}

// IsScanned reports whether no page carried a text layer at all.
func (d *Document) IsScanned() bool {
	for _, p := range d.Pages {
		if !p.NeedsOCR {
			return false
		}
	}
	return len(d.Pages) > 0
}

// PageTexts returns the page texts in order.
func (d *Document) PageTexts() []string {
	out := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.Text
	}
	return out
}

// MergeOCR substitutes externally produced OCR text into the pages that
// need it. pageTexts must be indexed by page order; entries for pages that
// already have a text layer are ignored.
func (d *Document) MergeOCR(pageTexts []string) {
	for i := range d.Pages {
		if !d.Pages[i].NeedsOCR || i >= len(pageTexts) {
			continue
		}
		text := NormalizeText(pageTexts[i])
		if text == "" {
			continue
		}
		d.Pages[i].Text = text
		d.Pages[i].NeedsOCR = false
	}
}

// ExtractPDF validates the file and extracts the text layer of every page.
// A structurally broken PDF is a hard error; an empty or image-only page is
// not, it is returned with NeedsOCR set.
func ExtractPDF(filePath string) (*Document, error) {
	pdfConfig := model.NewDefaultConfiguration()
	pdfConfig.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(filePath, pdfConfig); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", filepath.Base(filePath), err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	doc := &Document{Filename: filepath.Base(filePath)}
	pageCount := r.NumPage()

	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		page := Page{Number: i}
		if p.V.IsNull() {
			page.NeedsOCR = true
			doc.Pages = append(doc.Pages, page)
			continue
		}
		text, err := extractPageText(p)
		if err != nil {
			text = ""
		}
		page.Text = NormalizeText(text)
		page.NeedsOCR = page.Text == ""
		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}

// extractPageText extracts text using row-based positioning for better
// spacing, falling back to plain extraction when row data is unavailable.
func extractPageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}
	sort.Slice(sortedRows, func(i, j int) bool {
		return averageY(sortedRows[i].Content) < averageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func averageY(textElements []pdf.Text) float64 {
	if len(textElements) == 0 {
		return 0
	}
	var totalY float64
	for _, element := range textElements {
		totalY += element.Y
	}
	return totalY / float64(len(textElements))
}

// reconstructRowText rebuilds a text row left to right, inserting spaces
// where the horizontal gap between elements exceeds 20% of the font size.
func reconstructRowText(textElements []pdf.Text) string {
	if len(textElements) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(textElements))
	copy(sorted, textElements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, element := range sorted {
		buf.WriteString(element.S)
		if i < len(sorted)-1 {
			gap := sorted[i+1].X - (element.X + element.W)
			fontSize := element.FontSize
			if fontSize <= 0 {
				fontSize = 12
			}
			if gap > fontSize*0.2 {
				buf.WriteString(" ")
			}
		}
	}
	return buf.String()
}

// Package export renders a case's checklist as shareable plain text,
// in the three variants the output screen offers: pending only,
// delivered only, and the combined checklist.
package export

import (
	"fmt"
	"strings"

	"github.com/previdlabs/ppp/internal/model"
)

// Fixed lines rendered when a variant has nothing to list.
const (
	AllDelivered  = "Todos os documentos foram entregues!"
	NoneDelivered = "Nenhum documento foi marcado como entregue."
)

// PendingText lists the not-yet-delivered documents, numbered from 1.
func PendingText(items []model.ChecklistItem, clientName, benefitName string) string {
	pending := filter(items, false)
	if len(pending) == 0 {
		return AllDelivered
	}

	var b strings.Builder
	writeTitle(&b, "Documentos Pendentes", clientName, benefitName)
	writeNumbered(&b, pending)
	return strings.TrimSpace(b.String())
}

// DeliveredText lists the delivered documents, numbered from 1.
func DeliveredText(items []model.ChecklistItem, clientName, benefitName string) string {
	delivered := filter(items, true)
	if len(delivered) == 0 {
		return NoneDelivered
	}

	var b strings.Builder
	writeTitle(&b, "Documentos Entregues", clientName, benefitName)
	writeNumbered(&b, delivered)
	return strings.TrimSpace(b.String())
}

// CompleteText renders both sections. Numbering restarts at 1 in each
// section; empty sections are skipped entirely.
func CompleteText(items []model.ChecklistItem, clientName, benefitName string) string {
	delivered := filter(items, true)
	pending := filter(items, false)

	var b strings.Builder
	writeTitle(&b, "Checklist de Documentos", clientName, benefitName)

	if len(delivered) > 0 {
		b.WriteString("✅ *Entregues:*\n")
		writeNumbered(&b, delivered)
		b.WriteString("\n")
	}
	if len(pending) > 0 {
		b.WriteString("⏳ *Pendentes:*\n")
		writeNumbered(&b, pending)
	}
	return strings.TrimSpace(b.String())
}

func writeTitle(b *strings.Builder, title, clientName, benefitName string) {
	if clientName != "" {
		fmt.Fprintf(b, "*%s - %s*\n", title, clientName)
	} else {
		fmt.Fprintf(b, "*%s*\n", title)
	}
	if benefitName != "" {
		fmt.Fprintf(b, "Benefício: %s\n", benefitName)
	}
	b.WriteString("\n")
}

func writeNumbered(b *strings.Builder, items []model.ChecklistItem) {
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, it.Text)
	}
}

func filter(items []model.ChecklistItem, checked bool) []model.ChecklistItem {
	var out []model.ChecklistItem
	for _, it := range items {
		if it.Checked == checked {
			out = append(out, it)
		}
	}
	return out
}

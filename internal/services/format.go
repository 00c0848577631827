package services

import (
	"fmt"
	"strings"

	"github.com/kretovds/company-registry-bot/internal/models"
)

// MaxMessageLen is the transport's hard limit on one outbound message.
const MaxMessageLen = 4096

// FormatCompany renders a company card for chat output.
func FormatCompany(c models.Company) string {
	return fmt.Sprintf(
		"Название: %s\nИНН: %s\nТелефон: %s\nКонтактное лицо: %s\nEmail: %s\nДата создания: %s",
		c.Name, c.TaxID, c.Phone, c.ContactPerson, c.Email,
		c.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}

func formatCompanyList(header string, companies []models.Company) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, c := range companies {
		b.WriteString(FormatCompany(c))
		b.WriteString("\n\n")
	}
	return b.String()
}

// ChunkMessage splits text into consecutive pieces of at most limit runes.
// Concatenating the pieces in order reproduces the original text.
func ChunkMessage(text string, limit int) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(chunks, string(runes))
}

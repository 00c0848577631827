package services

import (
	"strings"
	"testing"
	"time"

	"github.com/kretovds/company-registry-bot/internal/models"
)

func TestChunkMessage(t *testing.T) {
	text := strings.Repeat("я", 10000)

	chunks := ChunkMessage(text, MaxMessageLen)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > MaxMessageLen {
			t.Errorf("chunk %d has %d runes, limit is %d", i, n, MaxMessageLen)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("concatenated chunks do not reproduce the original text")
	}
}

func TestChunkMessage_Short(t *testing.T) {
	chunks := ChunkMessage("привет", MaxMessageLen)
	if len(chunks) != 1 || chunks[0] != "привет" {
		t.Errorf("unexpected chunks: %q", chunks)
	}
}

func TestFormatCompany(t *testing.T) {
	c := models.Company{
		Name:          "ООО Ромашка",
		TaxID:         "1234567890",
		Phone:         "+74951234567",
		ContactPerson: "Иванов И.И.",
		Email:         "info@acme.ru",
		CreatedAt:     time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}

	got := FormatCompany(c)
	want := "Название: ООО Ромашка\n" +
		"ИНН: 1234567890\n" +
		"Телефон: +74951234567\n" +
		"Контактное лицо: Иванов И.И.\n" +
		"Email: info@acme.ru\n" +
		"Дата создания: 2026-08-01 12:30:00"
	if got != want {
		t.Errorf("FormatCompany:\ngot  %q\nwant %q", got, want)
	}
}

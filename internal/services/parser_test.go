package services

import "testing"

func TestParseCompanyReply_AllFields(t *testing.T) {
	resp := map[string]any{
		"done": "Контактное лицо: Иванов И.И.\n" +
			"Email: info@acme.ru\n" +
			"Название: ООО Ромашка\n" +
			"ИНН: 1234567890\n" +
			"Телефон: +74951234567",
	}

	draft := ParseCompanyReply(resp)
	if draft == nil {
		t.Fatal("expected a draft, got nil")
	}
	if draft.Name != "ООО Ромашка" {
		t.Errorf("Name = %q", draft.Name)
	}
	if draft.TaxID != "1234567890" {
		t.Errorf("TaxID = %q", draft.TaxID)
	}
	if draft.Phone != "+74951234567" {
		t.Errorf("Phone = %q", draft.Phone)
	}
	if draft.ContactPerson != "Иванов И.И." {
		t.Errorf("ContactPerson = %q", draft.ContactPerson)
	}
	if draft.Email != "info@acme.ru" {
		t.Errorf("Email = %q", draft.Email)
	}
}

func TestParseCompanyReply_MissingEmail(t *testing.T) {
	resp := map[string]any{
		"done": "Название: ООО Ромашка\nИНН: 1234567890\nТелефон: +74951234567",
	}
	if draft := ParseCompanyReply(resp); draft != nil {
		t.Errorf("expected nil for a reply without email, got %+v", draft)
	}
}

func TestParseCompanyReply_LabelInsideLine(t *testing.T) {
	// Label matching is substring-based, the label may appear mid-line.
	resp := map[string]any{
		"done": "Вот данные. Название: Acme\nзаписанный ИНН: 1234567890\nEmail: a@b.ru",
	}
	draft := ParseCompanyReply(resp)
	if draft == nil {
		t.Fatal("expected a draft, got nil")
	}
	if draft.Name != "Acme" {
		t.Errorf("Name = %q", draft.Name)
	}
	if draft.TaxID != "1234567890" {
		t.Errorf("TaxID = %q", draft.TaxID)
	}
}

func TestParseCompanyReply_FieldPriority(t *testing.T) {
	full := "Название: A\nИНН: 1\nEmail: a@b.ru"
	cases := []struct {
		name string
		resp map[string]any
		want bool
	}{
		{"done wins over message", map[string]any{"done": full, "message": "nope"}, true},
		{"message wins over text", map[string]any{"message": full, "text": "nope"}, true},
		{"text alone", map[string]any{"text": full}, true},
		{"empty done falls through", map[string]any{"done": "", "message": full}, true},
		{"no text fields", map[string]any{"other": full}, false},
		{"non-string field", map[string]any{"done": 42}, false},
		{"empty response", map[string]any{}, false},
	}
	for _, c := range cases {
		got := ParseCompanyReply(c.resp)
		if (got != nil) != c.want {
			t.Errorf("%s: got %+v, want present=%v", c.name, got, c.want)
		}
	}
}

func TestParseCompanyReply_EmptyValuesStillPresent(t *testing.T) {
	// A labeled line with nothing after the label counts as present.
	resp := map[string]any{
		"done": "Название:\nИНН:\nEmail:",
	}
	draft := ParseCompanyReply(resp)
	if draft == nil {
		t.Fatal("expected a draft with empty values, got nil")
	}
	if draft.Name != "" || draft.TaxID != "" || draft.Email != "" {
		t.Errorf("expected empty values, got %+v", draft)
	}
}

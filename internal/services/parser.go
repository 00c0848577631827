package services

import "strings"

// CompanyDraft is a set of fields extracted from an API reply, prior to the
// completeness check. Field values are trusted as-is; unlike the registration
// flow, no syntax validation is applied here.
type CompanyDraft struct {
	Name          string
	TaxID         string
	Phone         string
	ContactPerson string
	Email         string
}

// replyLabels are matched in order; the first label found anywhere in a line
// claims that line.
var replyLabels = []struct {
	label string
	field string
}{
	{"Название:", "name"},
	{"ИНН:", "taxid"},
	{"Телефон:", "phone"},
	{"Контактное лицо:", "contact_person"},
	{"Email:", "email"},
}

// replyTextKeys are checked in priority order for the reply text.
var replyTextKeys = []string{"done", "message", "text"}

// ParseCompanyReply extracts a company draft from an API response formatted as
//
//	Название: <название компании>
//	ИНН: <инн>
//	Телефон: <телефон>
//	Контактное лицо: <ФИО>
//	Email: <email>
//
// The draft is returned only when название, ИНН and email are all present;
// otherwise the reply carries no usable data and the result is nil.
func ParseCompanyReply(resp map[string]any) *CompanyDraft {
	text := replyText(resp)
	if text == "" {
		return nil
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		for _, l := range replyLabels {
			idx := strings.Index(line, l.label)
			if idx < 0 {
				continue
			}
			fields[l.field] = strings.TrimSpace(line[idx+len(l.label):])
			break
		}
	}

	for _, required := range []string{"name", "taxid", "email"} {
		if _, ok := fields[required]; !ok {
			return nil
		}
	}

	return &CompanyDraft{
		Name:          fields["name"],
		TaxID:         fields["taxid"],
		Phone:         fields["phone"],
		ContactPerson: fields["contact_person"],
		Email:         fields["email"],
	}
}

func replyText(resp map[string]any) string {
	for _, key := range replyTextKeys {
		if s, ok := resp[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

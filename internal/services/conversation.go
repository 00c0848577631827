package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/kretovds/company-registry-bot/internal/models"
	"github.com/kretovds/company-registry-bot/internal/repositories"
	"github.com/kretovds/company-registry-bot/internal/validators"
)

// Main menu labels. The transport renders them as reply-keyboard buttons and
// delivers presses back as plain text.
const (
	MenuAddCompany  = "Добавить компанию"
	MenuFindCompany = "Найти компанию"
	MenuSendToAPI   = "Отправить данные в API"
	MenuShowAll     = "Показать все компании"
	MenuHelp        = "Помощь"

	MenuSearchByName  = "По названию"
	MenuSearchByTaxID = "По ИНН"
	MenuSearchByEmail = "По email"
)

// criterionTitles are the dative criterion names echoed in the search prompt.
var criterionTitles = map[string]string{
	repositories.SearchByName:  "названию",
	repositories.SearchByTaxID: "инн",
	repositories.SearchByEmail: "email",
}

const helpText = `Этот бот помогает работать с данными компаний.
Доступные команды:
- Добавить компанию - внести новую компанию в базу
- Найти компанию - поиск по существующим компаниям
- Отправить данные в API - отправить данные для обработки и автоматического создания компании
- Показать все компании - отобразить список всех компаний в базе`

// Keyboard is the presentation hint attached to a reply.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardSearch
	KeyboardRemove
)

// Reply is one outbound message for the chat the event came from.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// InboundFile describes a file attachment delivered by the transport.
type InboundFile struct {
	URL     string
	Type    models.FileType
	Size    int64
	Caption string
}

// Inbound is a classified transport event: a text message, or a file with an
// optional caption.
type Inbound struct {
	MessageID int
	Text      string
	File      *InboundFile
}

// GatewayClient sends one chat-scoped request to the inference API.
type GatewayClient interface {
	Send(ctx context.Context, chatID int64, messageID int, content any) (map[string]any, error)
}

// ConversationEngine drives the per-chat flows: company registration, search
// and API submission. Dispatch is state-first: an active flow consumes the
// event; otherwise the event may start a flow via a menu label.
type ConversationEngine struct {
	repo     repositories.CompanyRepo
	gateway  GatewayClient
	validate *validator.Validate
	states   *stateStore
}

func NewConversationEngine(repo repositories.CompanyRepo, gw GatewayClient) *ConversationEngine {
	return &ConversationEngine{
		repo:     repo,
		gateway:  gw,
		validate: validators.New(),
		states:   newStateStore(),
	}
}

// Handle processes one inbound event for a chat and returns the replies to
// send, in order. Handling for one chat is serialized; an empty result means
// the event matched nothing and is ignored.
func (e *ConversationEngine) Handle(ctx context.Context, chatID int64, in Inbound) []Reply {
	unlock := e.states.Lock(chatID)
	defer unlock()

	if st := e.states.Get(chatID); st != nil {
		switch st.kind {
		case stateRegistering:
			return e.handleRegisterStep(chatID, st, in)
		case stateAwaitingAPIInput:
			return e.handleAPIInput(ctx, chatID, in)
		case stateSearching:
			return e.handleSearchStep(chatID, st, in)
		}
	}

	return e.handleMenu(chatID, in)
}

func (e *ConversationEngine) handleMenu(chatID int64, in Inbound) []Reply {
	if in.File != nil {
		return nil
	}

	switch in.Text {
	case "/start":
		return []Reply{{Text: "Привет! Выберите действие:", Keyboard: KeyboardMain}}

	case MenuHelp:
		return []Reply{{Text: helpText, Keyboard: KeyboardMain}}

	case MenuAddCompany:
		e.states.Set(chatID, &chatState{kind: stateRegistering, step: stepName})
		return []Reply{{Text: "Введите название компании:", Keyboard: KeyboardRemove}}

	case MenuFindCompany:
		e.states.Set(chatID, &chatState{kind: stateSearching})
		return []Reply{{Text: "Выберите критерий поиска:", Keyboard: KeyboardSearch}}

	case MenuSendToAPI:
		e.states.Set(chatID, &chatState{kind: stateAwaitingAPIInput})
		return []Reply{{Text: "Отправьте сообщение или файл с данными компании для обработки API:", Keyboard: KeyboardRemove}}

	case MenuShowAll:
		return e.listAllCompanies()
	}

	return nil
}

func (e *ConversationEngine) listAllCompanies() []Reply {
	companies, err := e.repo.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to list companies")
		return []Reply{{Text: fmt.Sprintf("⚠️ Ошибка: %v", err), Keyboard: KeyboardMain}}
	}
	if len(companies) == 0 {
		return []Reply{{Text: "В базе данных нет компаний.", Keyboard: KeyboardMain}}
	}
	return chunked(formatCompanyList("Список компаний:", companies), KeyboardMain)
}

func (e *ConversationEngine) handleRegisterStep(chatID int64, st *chatState, in Inbound) []Reply {
	if in.File != nil {
		return nil
	}
	text := in.Text

	switch st.step {
	case stepName:
		st.draft.Name = text
		st.step = stepTaxID
		return []Reply{{Text: "Введите ИНН компании (10 или 12 цифр):"}}

	case stepTaxID:
		if e.validate.Var(text, "taxid") != nil {
			return []Reply{{Text: "Некорректный ИНН. Введите 10 или 12 цифр:"}}
		}
		st.draft.TaxID = text
		st.step = stepPhone
		return []Reply{{Text: "Введите телефон компании:"}}

	case stepPhone:
		if e.validate.Var(text, "ruphone") != nil {
			return []Reply{{Text: "Некорректный телефон. Введите номер в формате +7XXXXXXXXXX или 8XXXXXXXXXX:"}}
		}
		st.draft.Phone = text
		st.step = stepContact
		return []Reply{{Text: "Введите контактное лицо:"}}

	case stepContact:
		st.draft.ContactPerson = text
		st.step = stepEmail
		return []Reply{{Text: "Введите email компании:"}}

	case stepEmail:
		if e.validate.Var(text, "companyemail") != nil {
			return []Reply{{Text: "Некорректный email. Введите email в формате example@domain.com:"}}
		}
		st.draft.Email = text
		defer e.states.Clear(chatID)

		company := draftToCompany(st.draft)
		if err := e.repo.Create(&company); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to save company")
			return []Reply{{Text: fmt.Sprintf("⚠️ Ошибка при сохранении компании: %v", err), Keyboard: KeyboardMain}}
		}
		log.Info().Int64("chat_id", chatID).Str("company_id", company.ID.String()).Msg("company registered")
		return []Reply{{Text: "✅ Компания успешно сохранена!", Keyboard: KeyboardMain}}
	}

	return nil
}

func (e *ConversationEngine) handleSearchStep(chatID int64, st *chatState, in Inbound) []Reply {
	if in.File != nil {
		return nil
	}

	if st.criterion == "" {
		switch in.Text {
		case MenuSearchByName:
			st.criterion = repositories.SearchByName
		case MenuSearchByTaxID:
			st.criterion = repositories.SearchByTaxID
		case MenuSearchByEmail:
			st.criterion = repositories.SearchByEmail
		default:
			return []Reply{{Text: "Выберите критерий поиска:", Keyboard: KeyboardSearch}}
		}
		prompt := fmt.Sprintf("Введите значение для поиска по %s:", criterionTitles[st.criterion])
		return []Reply{{Text: prompt, Keyboard: KeyboardRemove}}
	}

	defer e.states.Clear(chatID)

	companies, err := e.repo.Search(st.criterion, in.Text)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Str("criterion", st.criterion).Msg("search failed")
		return []Reply{{Text: fmt.Sprintf("⚠️ Ошибка: %v", err), Keyboard: KeyboardMain}}
	}
	if len(companies) == 0 {
		return []Reply{{Text: "Компании не найдены.", Keyboard: KeyboardMain}}
	}

	header := fmt.Sprintf("Найдено компаний: %d", len(companies))
	return chunked(formatCompanyList(header, companies), KeyboardMain)
}

// handleAPIInput forwards the next message or file to the inference API,
// persists the parsed company (and the attachment, for files), and always
// ends the flow with exactly one terminal reply.
func (e *ConversationEngine) handleAPIInput(ctx context.Context, chatID int64, in Inbound) []Reply {
	defer e.states.Clear(chatID)

	var content any = in.Text
	if in.File != nil {
		content = map[string]any{
			"file": map[string]any{
				"file_url":  in.File.URL,
				"file_type": string(in.File.Type),
				"file_size": in.File.Size,
				"caption":   in.File.Caption,
			},
		}
	}

	resp, err := e.gateway.Send(ctx, chatID, in.MessageID, content)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("API request failed")
		return []Reply{{Text: fmt.Sprintf("⚠️ Ошибка: %v", err), Keyboard: KeyboardMain}}
	}

	draft := ParseCompanyReply(resp)
	if draft == nil {
		return []Reply{{Text: "ℹ️ API не вернул данных компании в требуемом формате", Keyboard: KeyboardMain}}
	}

	company := draftToCompany(*draft)
	if err := e.repo.Create(&company); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to save company from API")
		return []Reply{{Text: fmt.Sprintf("⚠️ Ошибка: %v", err), Keyboard: KeyboardMain}}
	}

	if in.File != nil {
		attachment := models.FileAttachment{
			CompanyID: company.ID,
			FileURL:   in.File.URL,
			FileType:  in.File.Type,
		}
		if in.File.Caption != "" {
			caption := in.File.Caption
			attachment.Caption = &caption
		}
		if err := e.repo.CreateAttachment(&attachment); err != nil {
			// The company row stays; the orphan is reported, not rolled back.
			log.Error().Err(err).Str("company_id", company.ID.String()).Msg("failed to save attachment")
			return []Reply{{Text: fmt.Sprintf("⚠️ Компания сохранена, но файл не записан: %v", err), Keyboard: KeyboardMain}}
		}
	}

	log.Info().Int64("chat_id", chatID).Str("company_id", company.ID.String()).Msg("company created from API reply")
	return []Reply{{Text: "✅ Компания успешно добавлена из API!", Keyboard: KeyboardMain}}
}

func draftToCompany(d CompanyDraft) models.Company {
	return models.Company{
		Name:          d.Name,
		TaxID:         d.TaxID,
		Phone:         d.Phone,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
	}
}

func chunked(text string, kb Keyboard) []Reply {
	var replies []Reply
	for _, chunk := range ChunkMessage(text, MaxMessageLen) {
		replies = append(replies, Reply{Text: chunk, Keyboard: kb})
	}
	return replies
}

package model

import "time"

// ContentType is the discriminator of the singleton site-content document.
const ContentType = "main"

// Top-level keys of SiteContent that an update may replace.
const (
	ContentKeyContacts = "contacts"
	ContentKeyPackages = "packages"
)

// SiteContent holds the editable parts of the public site.
type SiteContent struct {
	Contacts Contacts `json:"contacts" bson:"contacts"`
	Packages Packages `json:"packages" bson:"packages"`
}

// Contacts is the contact block shown in the footer and contact page.
type Contacts struct {
	Email   string            `json:"email" bson:"email"`
	Phones  []string          `json:"phones" bson:"phones"`
	Address string            `json:"address" bson:"address"`
	Social  map[string]string `json:"social" bson:"social"`
}

// Packages are the consumer (b2c) and business (b2b) service packages.
type Packages struct {
	B2C []PackageItem `json:"b2c" bson:"b2c"`
	B2B []PackageItem `json:"b2b" bson:"b2b"`
}

// PackageItem is a single service package. FreeLesson only applies to b2c.
type PackageItem struct {
	ID          int      `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Features    []string `json:"features" bson:"features"`
	Popular     bool     `json:"popular" bson:"popular"`
	FreeLesson  *bool    `json:"freeLesson,omitempty" bson:"freeLesson,omitempty"`
}

// ContentDocument is the stored form of the singleton.
type ContentDocument struct {
	Type      string      `json:"type" bson:"type"`
	Data      SiteContent `json:"data" bson:"data"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// ContentUpdate replaces whichever top-level keys are supplied.
type ContentUpdate struct {
	Contacts Optional[Contacts] `json:"contacts"`
	Packages Optional[Packages] `json:"packages"`
}

// ContentMeta describes where the admin view of the content came from.
type ContentMeta struct {
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	IsDefault bool       `json:"is_default"`
}

// ContentUpdateResult is returned after a merge.
type ContentUpdateResult struct {
	Data          SiteContent `json:"data"`
	UpdatedFields []string    `json:"updated_fields"`
}

// DefaultSiteContent returns a fresh copy of the built-in content.
// Callers may mutate the result freely.
func DefaultSiteContent() SiteContent {
	yes := func() *bool { b := true; return &b }
	return SiteContent{
		Contacts: Contacts{
			Email:   "silisykt@mail.ru",
			Phones:  []string{"8 914 287 0753", "8 964 076 7660"},
			Address: "г. Якутск, ул. Лермонтова 47, ТЦ НОРД, 4 этаж",
			Social: map[string]string{
				"instagram": "silis_school",
				"telegram":  "https://t.me/silisschool",
				"vk":        "https://vk.com/siliscenter",
			},
		},
		Packages: Packages{
			B2C: []PackageItem{
				{
					ID:          1,
					Name:        "Интенсивы",
					Description: "Быстрое погружение в язык",
					Features:    []string{"Групповые занятия 3 раза в неделю", "Разговорная практика", "Домашние задания", "Поддержка преподавателя"},
					Popular:     false,
					FreeLesson:  yes(),
				},
				{
					ID:          2,
					Name:        "Частные занятия",
					Description: "Индивидуальный подход",
					Features:    []string{"Персональный преподаватель", "Гибкий график", "Индивидуальная программа", "Быстрый прогресс"},
					Popular:     true,
					FreeLesson:  yes(),
				},
				{
					ID:          3,
					Name:        "Вебинары",
					Description: "Онлайн обучение",
					Features:    []string{"Доступ из любой точки мира", "Записи занятий", "Интерактивные материалы", "Сертификат участника"},
					Popular:     false,
					FreeLesson:  yes(),
				},
			},
			B2B: []PackageItem{
				{
					ID:          1,
					Name:        "Старт",
					Description: "Базовое сопровождение",
					Features:    []string{"Консультация специалиста", "Базовый перевод документов", "Email поддержка"},
				},
				{
					ID:          2,
					Name:        "Стандарт",
					Description: "Комплексное сопровождение",
					Features:    []string{"Все из пакета Старт", "Деловые тренинги", "Телефонная поддержка", "Культурное консультирование"},
					Popular:     true,
				},
				{
					ID:          3,
					Name:        "Премиум",
					Description: "Полное сопровождение",
					Features:    []string{"Все из пакета Стандарт", "Персональный менеджер", "Срочные переводы", "Выездные тренинги"},
				},
			},
		},
	}
}

// Clone returns a deep copy of c.
func (c SiteContent) Clone() SiteContent {
	out := SiteContent{
		Contacts: Contacts{
			Email:   c.Contacts.Email,
			Phones:  append([]string(nil), c.Contacts.Phones...),
			Address: c.Contacts.Address,
		},
		Packages: Packages{
			B2C: clonePackages(c.Packages.B2C),
			B2B: clonePackages(c.Packages.B2B),
		},
	}
	if c.Contacts.Social != nil {
		out.Contacts.Social = make(map[string]string, len(c.Contacts.Social))
		for k, v := range c.Contacts.Social {
			out.Contacts.Social[k] = v
		}
	}
	return out
}

func clonePackages(items []PackageItem) []PackageItem {
	if items == nil {
		return nil
	}
	out := make([]PackageItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Features = append([]string(nil), it.Features...)
		if it.FreeLesson != nil {
			b := *it.FreeLesson
			out[i].FreeLesson = &b
		}
	}
	return out
}
